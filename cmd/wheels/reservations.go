package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/wheels/wheels-go/internal/api"
	"github.com/wheels/wheels-go/internal/models"
	"github.com/wheels/wheels-go/internal/reservations"
)

var reservationsCmd = &cobra.Command{
	Use:     "reservations",
	Aliases: []string{"res"},
	Short:   "Manage seat reservations",
}

var (
	reserveSeats  int
	reservePickup string
	reserveDrop   string
)

var reserveCmd = &cobra.Command{
	Use:   "reserve <trip-id>",
	Short: "Request seats on a trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := a.session.RequireUser()
		if err != nil {
			return friendly(err)
		}
		tripID, err := parseID(args[0])
		if err != nil {
			return err
		}
		tripSvc := api.NewTripService(a.client)
		trip, err := tripSvc.Get(cmd.Context(), tripID)
		if err != nil {
			return friendly(err)
		}

		in := reservations.NewReservation{
			TripID:      tripID,
			Seats:       reserveSeats,
			PickupPoint: reservePickup,
			DropPoint:   reserveDrop,
		}
		if err := reservations.ValidateNew(in, trip, user.ID); err != nil {
			return err
		}

		res, err := api.NewReservationService(a.client).Create(cmd.Context(), api.CreateReservation{
			TripID:      in.TripID,
			Seats:       in.Seats,
			PickupPoint: in.PickupPoint,
			DropPoint:   in.DropPoint,
		})
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("Reservation #%d created (%d seat(s), $%d total)\n",
			res.ID, res.Seats, trip.Fare*res.Seats)

		// refresh so the new seat count is what the user sees next
		if refreshed, err := tripSvc.Get(cmd.Context(), tripID); err == nil {
			fmt.Printf("Trip now has %d seat(s) left\n", refreshed.SeatsAvailable)
		}
		return nil
	},
}

var reservationsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your reservations as a passenger",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := api.NewReservationService(a.client).Mine(cmd.Context())
		if err != nil {
			return friendly(err)
		}
		printReservations(list)
		return nil
	},
}

var requestsTripID uint

var reservationsRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List reservation requests on trips you drive",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := api.NewReservationService(a.client)
		var (
			list []models.Reservation
			err  error
		)
		if requestsTripID != 0 {
			list, err = svc.ForTrip(cmd.Context(), requestsTripID)
		} else {
			list, err = svc.DriverRequests(cmd.Context())
		}
		if err != nil {
			return friendly(err)
		}
		printReservations(list)
		return nil
	},
}

var reservationsAcceptCmd = &cobra.Command{
	Use:   "accept <reservation-id>",
	Short: "Accept a reservation request",
	Args:  cobra.ExactArgs(1),
	RunE:  transitionRunE(func(svc *api.ReservationService) transitionFn { return svc.Accept }, "accepted"),
}

var reservationsRejectCmd = &cobra.Command{
	Use:   "reject <reservation-id>",
	Short: "Reject a reservation request",
	Args:  cobra.ExactArgs(1),
	RunE:  transitionRunE(func(svc *api.ReservationService) transitionFn { return svc.Reject }, "rejected"),
}

var reservationsCancelCmd = &cobra.Command{
	Use:   "cancel <reservation-id>",
	Short: "Cancel one of your reservations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		svc := api.NewReservationService(a.client)
		res, err := findMine(cmd, svc, id)
		if err != nil {
			return err
		}
		if err := reservations.CanCancel(res, time.Now()); err != nil {
			return err
		}
		if _, err := svc.Cancel(cmd.Context(), id); err != nil {
			return friendly(err)
		}
		fmt.Printf("Reservation #%d cancelled\n", id)
		return nil
	},
}

var reservationsDeleteCmd = &cobra.Command{
	Use:   "delete <reservation-id>",
	Short: "Delete one of your reservations outright",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		svc := api.NewReservationService(a.client)
		res, err := findMine(cmd, svc, id)
		if err != nil {
			return err
		}
		if err := reservations.CanDelete(res, time.Now()); err != nil {
			return err
		}
		if err := svc.Delete(cmd.Context(), id); err != nil {
			return friendly(err)
		}
		fmt.Printf("Reservation #%d deleted\n", id)
		return nil
	},
}

type transitionFn func(ctx context.Context, id uint) (models.Reservation, error)

func transitionRunE(pick func(*api.ReservationService) transitionFn, verb string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		svc := api.NewReservationService(a.client)
		if _, err := pick(svc)(cmd.Context(), id); err != nil {
			return friendly(err)
		}
		fmt.Printf("Reservation #%d %s\n", id, verb)

		// reload so the listing reflects the transition
		if list, err := svc.DriverRequests(cmd.Context()); err == nil {
			printReservations(list)
		}
		return nil
	}
}

func findMine(cmd *cobra.Command, svc *api.ReservationService, id uint) (models.Reservation, error) {
	list, err := svc.Mine(cmd.Context())
	if err != nil {
		return models.Reservation{}, friendly(err)
	}
	for _, res := range list {
		if res.ID == id {
			return res, nil
		}
	}
	return models.Reservation{}, fmt.Errorf("reservation #%d not found", id)
}

func printReservations(list []models.Reservation) {
	if len(list) == 0 {
		fmt.Println("No reservations found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTRIP\tROUTE\tDEPARTURE\tSEATS\tSTATUS")
	for _, r := range list {
		route := r.PickupPoint
		if r.Origin != "" {
			route = r.Origin + " -> " + r.Destination
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%s\n",
			r.ID, r.TripID, route,
			r.Departure.Format("2006-01-02 15:04"),
			r.Seats, r.Status)
	}
	w.Flush()
}

func init() {
	reserveCmd.Flags().IntVar(&reserveSeats, "seats", 1, "seats to reserve")
	reserveCmd.Flags().StringVar(&reservePickup, "pickup", "", "pickup point")
	reserveCmd.Flags().StringVar(&reserveDrop, "drop", "", "drop point (optional)")
	reservationsRequestsCmd.Flags().UintVar(&requestsTripID, "trip", 0, "only requests for this trip")

	reservationsCmd.AddCommand(
		reservationsMineCmd,
		reservationsRequestsCmd,
		reservationsAcceptCmd,
		reservationsRejectCmd,
		reservationsCancelCmd,
		reservationsDeleteCmd,
	)
	rootCmd.AddCommand(reservationsCmd, reserveCmd)
}
