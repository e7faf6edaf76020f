package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wheels/wheels-go/internal/api"
	"github.com/wheels/wheels-go/internal/locations"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Browse and create named locations",
}

var locationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all known locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ac := locations.New(api.NewLocationService(a.client))
		if err := ac.Load(cmd.Context()); err != nil {
			return friendly(err)
		}
		for _, loc := range ac.All() {
			fmt.Printf("%d\t%s\n", loc.ID, loc.Name)
		}
		return nil
	},
}

var locationsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search locations by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ac := locations.New(api.NewLocationService(a.client))
		if err := ac.Load(cmd.Context()); err != nil {
			return friendly(err)
		}
		matches := ac.Matches(args[0])
		for _, loc := range matches {
			fmt.Printf("%d\t%s\n", loc.ID, loc.Name)
		}
		if len(matches) == 0 {
			fmt.Println("No matches")
		}
		if ac.CanOfferCreate(args[0]) {
			fmt.Printf("Create it with: wheels locations resolve %q\n", args[0])
		}
		return nil
	},
}

var locationsResolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Find a location by exact name, creating it if new",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ac := locations.New(api.NewLocationService(a.client))
		if err := ac.Load(cmd.Context()); err != nil {
			return friendly(err)
		}
		if loc, ok := ac.ExactMatch(args[0]); ok {
			fmt.Printf("%d\t%s\n", loc.ID, loc.Name)
			return nil
		}
		if !ac.CanOfferCreate(args[0]) {
			return fmt.Errorf("location names need at least %d characters", locations.MinCreateLength)
		}
		loc, err := ac.Resolve(cmd.Context(), args[0])
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("%d\t%s\n", loc.ID, loc.Name)
		return nil
	},
}

func init() {
	locationsCmd.AddCommand(locationsListCmd, locationsSearchCmd, locationsResolveCmd)
	rootCmd.AddCommand(locationsCmd)
}
