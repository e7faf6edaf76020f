package trips

import (
	"errors"
	"testing"
	"time"

	"github.com/wheels/wheels-go/internal/models"
	"github.com/wheels/wheels-go/internal/validate"
)

func validNewTrip() NewTrip {
	return NewTrip{
		Origin:      "Bogotá",
		Destination: "Chía",
		Departure:   testNow.Add(24 * time.Hour),
		TotalSeats:  3,
		Fare:        15000,
		VehicleID:   7,
	}
}

func issuesOf(t *testing.T, err error) validate.Errors {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	var es validate.Errors
	if !errors.As(err, &es) {
		t.Fatalf("expected validate.Errors, got %T", err)
	}
	return es
}

func TestValidateNewAccepts(t *testing.T) {
	if err := ValidateNew(validNewTrip(), 4, false, testNow); err != nil {
		t.Fatalf("expected valid trip, got %v", err)
	}
}

func TestValidateNewSameEndpoints(t *testing.T) {
	in := validNewTrip()
	in.Destination = in.Origin
	es := issuesOf(t, ValidateNew(in, 4, false, testNow))
	if !es.Has(validate.CodeSameEndpoints) {
		t.Fatalf("expected same_endpoints, got %v", es)
	}
}

func TestValidateNewDepartureMustBeFuture(t *testing.T) {
	in := validNewTrip()
	in.Departure = testNow
	es := issuesOf(t, ValidateNew(in, 4, false, testNow))
	if !es.Has(validate.CodeNotFuture) {
		t.Fatalf("expected not_future, got %v", es)
	}
}

func TestValidateNewFare(t *testing.T) {
	in := validNewTrip()
	in.Fare = 0
	if es := issuesOf(t, ValidateNew(in, 4, false, testNow)); !es.Has(validate.CodeFareNotPositive) {
		t.Fatalf("expected fare_not_positive, got %v", es)
	}
	in.Fare = 999
	if es := issuesOf(t, ValidateNew(in, 4, false, testNow)); !es.Has(validate.CodeFareBelowMin) {
		t.Fatalf("expected fare_below_min, got %v", es)
	}
	in.Fare = MinFare
	if err := ValidateNew(in, 4, false, testNow); err != nil {
		t.Fatalf("minimum fare should pass, got %v", err)
	}
}

func TestValidateNewSeatBounds(t *testing.T) {
	for _, seats := range []int{0, 7} {
		in := validNewTrip()
		in.TotalSeats = seats
		if es := issuesOf(t, ValidateNew(in, 0, false, testNow)); !es.Has(validate.CodeSeatsOutOfRange) {
			t.Fatalf("seats=%d: expected seats_out_of_range, got %v", seats, es)
		}
	}

	// vehicle capacity tightens the upper bound
	in := validNewTrip()
	in.TotalSeats = 3
	if es := issuesOf(t, ValidateNew(in, 2, false, testNow)); !es.Has(validate.CodeSeatsOutOfRange) {
		t.Fatalf("expected capacity bound to apply, got %v", es)
	}
}

func TestValidateNewBlocksSecondActiveTrip(t *testing.T) {
	es := issuesOf(t, ValidateNew(validNewTrip(), 4, true, testNow))
	if !es.Has(validate.CodeActiveTripOwned) {
		t.Fatalf("expected active_trip_owned, got %v", es)
	}
}

func TestHasActive(t *testing.T) {
	list := []models.Trip{
		{Status: models.TripStatusCompleted},
		{Status: models.TripStatusCancelled},
	}
	if HasActive(list) {
		t.Fatal("no active trip in list")
	}
	list = append(list, models.Trip{Status: models.TripStatusActive})
	if !HasActive(list) {
		t.Fatal("active trip not detected")
	}
}

func TestCanReserve(t *testing.T) {
	trip := mkTrip(1, "Bogotá", "Chía", testNow.Add(3*time.Hour), 8000, 2)
	trip.DriverID = 10

	if err := CanReserve(trip, 20); err != nil {
		t.Fatalf("expected reservable, got %v", err)
	}

	if es := issuesOf(t, CanReserve(trip, 10)); !es.Has(validate.CodeOwnTrip) {
		t.Fatalf("driver reserving own trip: got %v", es)
	}

	full := trip
	full.SeatsAvailable = 0
	if es := issuesOf(t, CanReserve(full, 20)); !es.Has(validate.CodeNoSeatsLeft) {
		t.Fatalf("zero seats: got %v", es)
	}

	done := trip
	done.Status = models.TripStatusCompleted
	if es := issuesOf(t, CanReserve(done, 20)); !es.Has(validate.CodeTripNotActive) {
		t.Fatalf("completed trip: got %v", es)
	}
}

func TestMaxReservableSeats(t *testing.T) {
	trip := mkTrip(1, "a", "b", testNow.Add(time.Hour), 5000, 6)
	if got := MaxReservableSeats(trip); got != MaxSeatsPerReservation {
		t.Fatalf("expected cap of %d, got %d", MaxSeatsPerReservation, got)
	}
	trip.SeatsAvailable = 2
	if got := MaxReservableSeats(trip); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestCanCancelBoundary(t *testing.T) {
	trip := mkTrip(1, "Bogotá", "Chía", testNow.Add(MinCancelLead+time.Minute), 8000, 2)
	if err := CanCancel(trip, testNow); err != nil {
		t.Fatalf("61 minutes out should be cancellable, got %v", err)
	}

	// exactly at the one-hour boundary the action is disabled
	atBoundary := mkTrip(2, "Bogotá", "Chía", testNow.Add(MinCancelLead), 8000, 2)
	if es := issuesOf(t, CanCancel(atBoundary, testNow)); !es.Has(validate.CodeTooCloseToStart) {
		t.Fatalf("expected too_close_to_start, got %v", es)
	}

	cancelled := trip
	cancelled.Status = models.TripStatusCancelled
	if es := issuesOf(t, CanCancel(cancelled, testNow)); !es.Has(validate.CodeStatusClosed) {
		t.Fatalf("expected status_closed, got %v", es)
	}
}

func TestCanComplete(t *testing.T) {
	finished := mkTrip(1, "Bogotá", "Chía", testNow.Add(-2*time.Hour), 8000, 0)
	finished.Status = models.TripStatusFull
	if err := CanComplete(finished, testNow); err != nil {
		t.Fatalf("a departed open trip should be completable, got %v", err)
	}

	upcoming := mkTrip(2, "Bogotá", "Chía", testNow.Add(time.Hour), 8000, 2)
	if es := issuesOf(t, CanComplete(upcoming, testNow)); !es.Has(validate.CodeNotStarted) {
		t.Fatalf("expected not_started, got %v", es)
	}

	cancelled := finished
	cancelled.Status = models.TripStatusCancelled
	if es := issuesOf(t, CanComplete(cancelled, testNow)); !es.Has(validate.CodeStatusClosed) {
		t.Fatalf("expected status_closed, got %v", es)
	}
}

func TestValidateUpdate(t *testing.T) {
	in := validNewTrip()
	in.VehicleID = 0 // not re-checked on edit
	if err := ValidateUpdate(in, testNow); err != nil {
		t.Fatalf("expected valid edit, got %v", err)
	}

	same := in
	same.Destination = same.Origin
	if es := issuesOf(t, ValidateUpdate(same, testNow)); !es.Has(validate.CodeSameEndpoints) {
		t.Fatalf("expected same_endpoints, got %v", es)
	}

	past := in
	past.Departure = testNow.Add(-time.Minute)
	if es := issuesOf(t, ValidateUpdate(past, testNow)); !es.Has(validate.CodeNotFuture) {
		t.Fatalf("expected not_future, got %v", es)
	}

	cheap := in
	cheap.Fare = 500
	if es := issuesOf(t, ValidateUpdate(cheap, testNow)); !es.Has(validate.CodeFareBelowMin) {
		t.Fatalf("expected fare_below_min, got %v", es)
	}

	crowded := in
	crowded.TotalSeats = 7
	if es := issuesOf(t, ValidateUpdate(crowded, testNow)); !es.Has(validate.CodeSeatsOutOfRange) {
		t.Fatalf("expected seats_out_of_range, got %v", es)
	}
}
