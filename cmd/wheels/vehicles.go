package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wheels/wheels-go/internal/api"
	"github.com/wheels/wheels-go/internal/models"
	"github.com/wheels/wheels-go/internal/validate"
)

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "Manage your registered vehicles",
}

var vehiclesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your vehicles",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := api.NewVehicleService(a.client).Mine(cmd.Context())
		if err != nil {
			return friendly(err)
		}
		if len(list) == 0 {
			fmt.Println("No vehicles registered")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPLATE\tBRAND\tMODEL\tCAPACITY")
		for _, v := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", v.ID, v.Plate, v.Brand, v.Model, v.Capacity)
		}
		w.Flush()
		return nil
	},
}

var (
	vehiclePlate    string
	vehicleBrand    string
	vehicleModel    string
	vehicleCapacity int
	vehiclePhoto    string
)

var vehiclesRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new vehicle",
	RunE: func(cmd *cobra.Command, args []string) error {
		var es validate.Errors
		es.Require("plate", strings.TrimSpace(vehiclePlate))
		es.Require("brand", strings.TrimSpace(vehicleBrand))
		es.Require("model", strings.TrimSpace(vehicleModel))
		if vehicleCapacity < models.VehicleMinCapacity || vehicleCapacity > models.VehicleMaxCapacity {
			es.Fail("capacity", validate.CodeSeatsOutOfRange)
		}
		if err := es.OrNil(); err != nil {
			return err
		}

		v, err := api.NewVehicleService(a.client).Register(cmd.Context(), api.RegisterVehicle{
			Plate:     vehiclePlate,
			Brand:     vehicleBrand,
			Model:     vehicleModel,
			Capacity:  vehicleCapacity,
			PhotoPath: vehiclePhoto,
		})
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("Vehicle #%d registered (%s)\n", v.ID, v.Plate)
		return nil
	},
}

var vehiclesDeleteCmd = &cobra.Command{
	Use:   "delete <vehicle-id>",
	Short: "Delete one of your vehicles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := api.NewVehicleService(a.client).Delete(cmd.Context(), id); err != nil {
			return friendly(err)
		}
		fmt.Printf("Vehicle #%d deleted\n", id)
		return nil
	},
}

func init() {
	vehiclesRegisterCmd.Flags().StringVar(&vehiclePlate, "plate", "", "license plate")
	vehiclesRegisterCmd.Flags().StringVar(&vehicleBrand, "brand", "", "vehicle brand")
	vehiclesRegisterCmd.Flags().StringVar(&vehicleModel, "model", "", "model year")
	vehiclesRegisterCmd.Flags().IntVar(&vehicleCapacity, "capacity", 0, "seat capacity (1-6)")
	vehiclesRegisterCmd.Flags().StringVar(&vehiclePhoto, "photo", "", "photo file to upload (optional)")

	vehiclesCmd.AddCommand(vehiclesListCmd, vehiclesRegisterCmd, vehiclesDeleteCmd)
	rootCmd.AddCommand(vehiclesCmd)
}
