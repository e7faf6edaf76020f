package trips

import (
	"strings"
	"time"

	"github.com/wheels/wheels-go/internal/models"
	"github.com/wheels/wheels-go/internal/validate"
)

const (
	// MinFare is the lowest allowed fare, in currency units.
	MinFare = 1000

	// MaxSeatsPerReservation caps how many seats one reservation takes.
	MaxSeatsPerReservation = 4

	// MinCancelLead is how much time must remain before departure for a
	// cancel or delete to go through. Exactly at the boundary it does not.
	MinCancelLead = time.Hour
)

// NewTrip is a trip-to-be as entered by the driver, before it ever
// reaches the backend.
type NewTrip struct {
	Origin      string
	Destination string
	Departure   time.Time
	TotalSeats  int
	Fare        int
	VehicleID   uint
}

// ValidateNew runs every client-side precondition for publishing a trip.
// vehicleCapacity caps the seat count; pass zero when unknown and only
// the global bound applies. hasActiveTrip blocks drivers who already own
// a currently-active trip. The server re-checks all of it.
func ValidateNew(in NewTrip, vehicleCapacity int, hasActiveTrip bool, now time.Time) error {
	var es validate.Errors

	maxSeats := models.VehicleMaxCapacity
	if vehicleCapacity > 0 && vehicleCapacity < maxSeats {
		maxSeats = vehicleCapacity
	}
	checkFields(&es, in, maxSeats, now)

	if in.VehicleID == 0 {
		es.Fail("vehicle", validate.CodeRequired)
	}

	if hasActiveTrip {
		es.Fail("", validate.CodeActiveTripOwned)
	}

	return es.OrNil()
}

// ValidateUpdate runs the per-field preconditions for editing an
// existing trip. The vehicle binding and the one-active-trip rule are
// fixed at creation and not re-checked here.
func ValidateUpdate(in NewTrip, now time.Time) error {
	var es validate.Errors
	checkFields(&es, in, models.VehicleMaxCapacity, now)
	return es.OrNil()
}

func checkFields(es *validate.Errors, in NewTrip, maxSeats int, now time.Time) {
	checkPlace(es, "origin", in.Origin)
	checkPlace(es, "destination", in.Destination)
	if in.Origin != "" && in.Origin == in.Destination {
		es.Fail("destination", validate.CodeSameEndpoints)
	}

	if in.Departure.IsZero() {
		es.Fail("departure", validate.CodeRequired)
	} else if !in.Departure.After(now) {
		es.Fail("departure", validate.CodeNotFuture)
	}

	if in.TotalSeats < models.VehicleMinCapacity || in.TotalSeats > maxSeats {
		es.Fail("seats", validate.CodeSeatsOutOfRange)
	}

	if in.Fare <= 0 {
		es.Fail("fare", validate.CodeFareNotPositive)
	} else if in.Fare < MinFare {
		es.Fail("fare", validate.CodeFareBelowMin)
	}
}

func checkPlace(es *validate.Errors, field, value string) {
	if value == "" {
		es.Fail(field, validate.CodeRequired)
	} else if strings.TrimSpace(value) == "" {
		es.Fail(field, validate.CodeBlank)
	}
}

// HasActive reports whether any of the given trips is still active,
// used to block a second concurrent trip by the same driver.
func HasActive(list []models.Trip) bool {
	for _, t := range list {
		if t.IsActive() {
			return true
		}
	}
	return false
}

// ReserveIssues lists everything preventing the given user from
// reserving seats on the trip.
func ReserveIssues(trip models.Trip, userID uint) validate.Errors {
	var es validate.Errors
	if trip.OwnedBy(userID) {
		es.Fail("trip", validate.CodeOwnTrip)
	}
	if !trip.IsActive() {
		es.Fail("trip", validate.CodeTripNotActive)
	}
	if trip.SeatsAvailable <= 0 {
		es.Fail("trip", validate.CodeNoSeatsLeft)
	}
	return es
}

// CanReserve gates a reservation attempt before any network call.
func CanReserve(trip models.Trip, userID uint) error {
	return ReserveIssues(trip, userID).OrNil()
}

// MaxReservableSeats is how many seats a single reservation on this
// trip may request.
func MaxReservableSeats(trip models.Trip) int {
	if trip.SeatsAvailable < MaxSeatsPerReservation {
		return trip.SeatsAvailable
	}
	return MaxSeatsPerReservation
}

// CanCancel gates a driver cancelling their trip: the trip must still
// be active with strictly more than MinCancelLead before departure.
func CanCancel(trip models.Trip, now time.Time) error {
	var es validate.Errors
	if !trip.IsActive() {
		es.Fail("trip", validate.CodeStatusClosed)
	}
	if trip.Departure.Sub(now) <= MinCancelLead {
		es.Fail("trip", validate.CodeTooCloseToStart)
	}
	return es.OrNil()
}

// CanComplete gates a driver marking their trip as done: the trip must
// still be open (active or full) and its departure already in the past.
func CanComplete(trip models.Trip, now time.Time) error {
	var es validate.Errors
	if trip.Status != models.TripStatusActive && trip.Status != models.TripStatusFull {
		es.Fail("trip", validate.CodeStatusClosed)
	}
	if trip.Departure.After(now) {
		es.Fail("trip", validate.CodeNotStarted)
	}
	return es.OrNil()
}
