package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wheels/wheels-go/internal/api"
	"github.com/wheels/wheels-go/internal/roles"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Resolve which dashboard you land on",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := roles.NewResolver(
			a.session,
			api.NewRoleService(a.client),
			api.NewVehicleService(a.client),
		)
		switch resolver.Resolve(cmd.Context()) {
		case roles.DashboardLogin:
			fmt.Println("Not logged in, run 'wheels login' first")
		case roles.DashboardDriver:
			fmt.Println("Driver dashboard: see 'wheels trips mine' and 'wheels reservations requests'")
		default:
			fmt.Println("Passenger dashboard: see 'wheels trips list' and 'wheels reservations mine'")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
