// Package reservations holds the passenger-side gates and validation
// for seat reservations. Like every client gate these are advisory; the
// server's answer is the authoritative one and is never retried.
package reservations

import (
	"strings"
	"time"

	"github.com/wheels/wheels-go/internal/models"
	"github.com/wheels/wheels-go/internal/trips"
	"github.com/wheels/wheels-go/internal/validate"
)

// NewReservation is a seat request as entered by the passenger.
type NewReservation struct {
	TripID      uint
	Seats       int
	PickupPoint string
	DropPoint   string
}

// ValidateNew gates creating a reservation against the trip it targets.
func ValidateNew(in NewReservation, trip models.Trip, userID uint) error {
	es := trips.ReserveIssues(trip, userID)

	if in.Seats < 1 {
		es.Fail("seats", validate.CodeSeatsOutOfRange)
	} else if max := trips.MaxReservableSeats(trip); in.Seats > max {
		es.Fail("seats", validate.CodeTooManySeats)
	}

	if strings.TrimSpace(in.PickupPoint) == "" {
		es.Fail("pickup", validate.CodeRequired)
	}

	return es.OrNil()
}

// CanCancel gates a passenger cancelling their reservation: it must
// still be pending or accepted, with strictly more than an hour left
// before departure. Exactly one hour out the action is already blocked.
func CanCancel(r models.Reservation, now time.Time) error {
	return openAndEarly(r, now)
}

// CanDelete gates removing a reservation record outright. The
// preconditions match CanCancel; the operations differ in effect, not
// in when they are allowed.
func CanDelete(r models.Reservation, now time.Time) error {
	return openAndEarly(r, now)
}

func openAndEarly(r models.Reservation, now time.Time) error {
	var es validate.Errors
	if !r.IsOpen() {
		es.Fail("reservation", validate.CodeStatusClosed)
	}
	if r.Departure.Sub(now) <= trips.MinCancelLead {
		es.Fail("reservation", validate.CodeTooCloseToStart)
	}
	return es.OrNil()
}
