package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/wheels/wheels-go/internal/api"
	"github.com/wheels/wheels-go/internal/models"
	"github.com/wheels/wheels-go/internal/trips"
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "Browse and manage trips",
}

var (
	listOrigin      string
	listDestination string
	listDate        string
	listMinFare     int
	listMaxFare     int
	listMinSeats    int
)

var tripsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available trips, filtered locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := api.NewTripService(a.client)

		query := api.AvailableQuery{Origin: listOrigin, Destination: listDestination}
		filter := trips.Filter{
			Origin:      listOrigin,
			Destination: listDestination,
			MinSeats:    listMinSeats,
		}
		if listDate != "" {
			date, err := time.ParseInLocation("2006-01-02", listDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date, expected YYYY-MM-DD: %v", err)
			}
			query.Date = date
			filter.Date = date
		}
		if cmd.Flags().Changed("min-fare") {
			filter.MinFare = trips.IntPtr(listMinFare)
		}
		if cmd.Flags().Changed("max-fare") {
			filter.MaxFare = trips.IntPtr(listMaxFare)
		}

		list, err := svc.Available(cmd.Context(), query)
		if err != nil {
			return friendly(err)
		}
		printTrips(filter.Apply(list, time.Now()))
		return nil
	},
}

var tripsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List trips you drive",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := api.NewTripService(a.client).Mine(cmd.Context())
		if err != nil {
			return friendly(err)
		}
		printTrips(list)
		return nil
	},
}

var tripsShowCmd = &cobra.Command{
	Use:   "show <trip-id>",
	Short: "Show one trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		trip, err := api.NewTripService(a.client).Get(cmd.Context(), id)
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("Trip #%d  %s -> %s\n", trip.ID, trip.Origin, trip.Destination)
		fmt.Printf("Departure: %s\n", trip.Departure.Format("Mon 02 Jan 2006 15:04"))
		fmt.Printf("Fare: $%d per seat\n", trip.Fare)
		fmt.Printf("Seats: %d of %d available\n", trip.SeatsAvailable, trip.TotalSeats)
		fmt.Printf("Status: %s\n", trip.Status)
		if trip.DriverName != "" {
			fmt.Printf("Driver: %s\n", trip.DriverName)
		}
		return nil
	},
}

var (
	createOrigin      string
	createDestination string
	createDeparture   string
	createSeats       int
	createFare        int
	createVehicle     uint
)

var tripsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.session.RequireUser(); err != nil {
			return friendly(err)
		}
		departure, err := time.ParseInLocation("2006-01-02 15:04", createDeparture, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --departure, expected 'YYYY-MM-DD HH:MM': %v", err)
		}

		tripSvc := api.NewTripService(a.client)
		mine, err := tripSvc.Mine(cmd.Context())
		if err != nil {
			return friendly(err)
		}
		vehicles, err := api.NewVehicleService(a.client).Mine(cmd.Context())
		if err != nil {
			return friendly(err)
		}
		capacity := 0
		for _, v := range vehicles {
			if v.ID == createVehicle {
				capacity = v.Capacity
			}
		}

		in := trips.NewTrip{
			Origin:      createOrigin,
			Destination: createDestination,
			Departure:   departure,
			TotalSeats:  createSeats,
			Fare:        createFare,
			VehicleID:   createVehicle,
		}
		if err := trips.ValidateNew(in, capacity, trips.HasActive(mine), time.Now()); err != nil {
			return err
		}

		trip, err := tripSvc.Create(cmd.Context(), api.CreateTrip{
			Origin:      in.Origin,
			Destination: in.Destination,
			Departure:   models.NewAPITime(in.Departure),
			TotalSeats:  in.TotalSeats,
			Fare:        in.Fare,
			VehicleID:   in.VehicleID,
		})
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("Trip #%d published\n", trip.ID)
		return nil
	},
}

var (
	updateOrigin      string
	updateDestination string
	updateDeparture   string
	updateSeats       int
	updateFare        int
)

var tripsUpdateCmd = &cobra.Command{
	Use:   "update <trip-id>",
	Short: "Edit a trip you drive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		svc := api.NewTripService(a.client)
		trip, err := svc.Get(cmd.Context(), id)
		if err != nil {
			return friendly(err)
		}

		// start from the current values, overlay only the given flags
		in := trips.NewTrip{
			Origin:      trip.Origin,
			Destination: trip.Destination,
			Departure:   trip.Departure.Time,
			TotalSeats:  trip.TotalSeats,
			Fare:        trip.Fare,
			VehicleID:   trip.VehicleID,
		}
		if cmd.Flags().Changed("origin") {
			in.Origin = updateOrigin
		}
		if cmd.Flags().Changed("destination") {
			in.Destination = updateDestination
		}
		if cmd.Flags().Changed("departure") {
			departure, err := time.ParseInLocation("2006-01-02 15:04", updateDeparture, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --departure, expected 'YYYY-MM-DD HH:MM': %v", err)
			}
			in.Departure = departure
		}
		if cmd.Flags().Changed("seats") {
			in.TotalSeats = updateSeats
		}
		if cmd.Flags().Changed("fare") {
			in.Fare = updateFare
		}
		if err := trips.ValidateUpdate(in, time.Now()); err != nil {
			return err
		}

		updated, err := svc.Update(cmd.Context(), id, api.CreateTrip{
			Origin:      in.Origin,
			Destination: in.Destination,
			Departure:   models.NewAPITime(in.Departure),
			TotalSeats:  in.TotalSeats,
			Fare:        in.Fare,
			VehicleID:   in.VehicleID,
		})
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("Trip #%d updated\n", updated.ID)
		printTrips([]models.Trip{updated})
		return nil
	},
}

var tripsCancelCmd = &cobra.Command{
	Use:   "cancel <trip-id>",
	Short: "Cancel a trip you drive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		svc := api.NewTripService(a.client)
		trip, err := svc.Get(cmd.Context(), id)
		if err != nil {
			return friendly(err)
		}
		if err := trips.CanCancel(trip, time.Now()); err != nil {
			return err
		}
		if err := svc.Cancel(cmd.Context(), id); err != nil {
			return friendly(err)
		}
		fmt.Printf("Trip #%d cancelled\n", id)
		return nil
	},
}

var tripsCompleteCmd = &cobra.Command{
	Use:   "complete <trip-id>",
	Short: "Mark a trip you drove as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		svc := api.NewTripService(a.client)
		trip, err := svc.Get(cmd.Context(), id)
		if err != nil {
			return friendly(err)
		}
		if err := trips.CanComplete(trip, time.Now()); err != nil {
			return err
		}
		if _, err := svc.Complete(cmd.Context(), id); err != nil {
			return friendly(err)
		}
		fmt.Printf("Trip #%d completed\n", id)
		return nil
	},
}

func printTrips(list []models.Trip) {
	if len(list) == 0 {
		fmt.Println("No trips found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tORIGIN\tDESTINATION\tDEPARTURE\tFARE\tSEATS\tSTATUS")
	for _, t := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t$%d\t%d/%d\t%s\n",
			t.ID, t.Origin, t.Destination,
			t.Departure.Format("2006-01-02 15:04"),
			t.Fare, t.SeatsAvailable, t.TotalSeats, t.Status)
	}
	w.Flush()
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

func init() {
	tripsListCmd.Flags().StringVar(&listOrigin, "origin", "", "origin substring")
	tripsListCmd.Flags().StringVar(&listDestination, "destination", "", "destination substring")
	tripsListCmd.Flags().StringVar(&listDate, "date", "", "exact departure date (YYYY-MM-DD)")
	tripsListCmd.Flags().IntVar(&listMinFare, "min-fare", 0, "minimum fare")
	tripsListCmd.Flags().IntVar(&listMaxFare, "max-fare", 0, "maximum fare")
	tripsListCmd.Flags().IntVar(&listMinSeats, "min-seats", 1, "minimum open seats")

	tripsCreateCmd.Flags().StringVar(&createOrigin, "origin", "", "trip origin")
	tripsCreateCmd.Flags().StringVar(&createDestination, "destination", "", "trip destination")
	tripsCreateCmd.Flags().StringVar(&createDeparture, "departure", "", "departure time (YYYY-MM-DD HH:MM)")
	tripsCreateCmd.Flags().IntVar(&createSeats, "seats", 0, "total seats offered")
	tripsCreateCmd.Flags().IntVar(&createFare, "fare", 0, "fare per seat")
	tripsCreateCmd.Flags().UintVar(&createVehicle, "vehicle", 0, "vehicle id")

	tripsUpdateCmd.Flags().StringVar(&updateOrigin, "origin", "", "new origin")
	tripsUpdateCmd.Flags().StringVar(&updateDestination, "destination", "", "new destination")
	tripsUpdateCmd.Flags().StringVar(&updateDeparture, "departure", "", "new departure time (YYYY-MM-DD HH:MM)")
	tripsUpdateCmd.Flags().IntVar(&updateSeats, "seats", 0, "new total seat count")
	tripsUpdateCmd.Flags().IntVar(&updateFare, "fare", 0, "new fare per seat")

	tripsCmd.AddCommand(tripsListCmd, tripsMineCmd, tripsShowCmd, tripsCreateCmd, tripsUpdateCmd, tripsCancelCmd, tripsCompleteCmd)
	rootCmd.AddCommand(tripsCmd)
}
