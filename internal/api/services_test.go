package api_test

import (
	"context"
	"testing"
	"time"

	"github.com/wheels/wheels-go/internal/api"
	"github.com/wheels/wheels-go/internal/models"
	"github.com/wheels/wheels-go/internal/wheelstest"
)

func newClient(t *testing.T, srv *wheelstest.Server, userID uint) *api.Client {
	t.Helper()
	client := api.NewClient(api.Options{BaseURL: srv.BaseURL()})
	client.SetToken(srv.TokenFor(userID))
	return client
}

func TestTripLifecycle(t *testing.T) {
	srv := wheelstest.NewServer()
	defer srv.Close()
	driver := srv.AddUser("ana@uni.edu", "secret", "Ana")
	client := newClient(t, srv, driver.ID)
	ctx := context.Background()

	svc := api.NewTripService(client)
	created, err := svc.Create(ctx, api.CreateTrip{
		Origin:      "Campus Norte",
		Destination: "Estacion Central",
		Departure:   models.NewAPITime(time.Now().Add(24 * time.Hour)),
		TotalSeats:  3,
		Fare:        5000,
		VehicleID:   1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != models.TripStatusActive || created.SeatsAvailable != 3 {
		t.Fatalf("unexpected created trip: %+v", created)
	}

	mine, err := svc.Mine(ctx)
	if err != nil {
		t.Fatalf("mine failed: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("unexpected own trips: %+v", mine)
	}

	available, err := svc.Available(ctx, api.AvailableQuery{Origin: "campus"})
	if err != nil {
		t.Fatalf("available failed: %v", err)
	}
	if len(available) != 1 {
		t.Fatalf("expected the trip in the listing, got %+v", available)
	}

	if err := svc.Cancel(ctx, created.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	stored, ok := srv.Trip(created.ID)
	if !ok || stored.Status != models.TripStatusCancelled {
		t.Fatalf("trip not cancelled server-side: %+v", stored)
	}
}

func TestReservationFlowDecrementsSeats(t *testing.T) {
	srv := wheelstest.NewServer()
	defer srv.Close()
	driver := srv.AddUser("ana@uni.edu", "secret", "Ana")
	passenger := srv.AddUser("eva@uni.edu", "secret", "Eva")
	trip := srv.AddTrip(models.Trip{
		Origin:         "Campus Sur",
		Destination:    "Terminal",
		Departure:      models.NewAPITime(time.Now().Add(6 * time.Hour)),
		Fare:           3000,
		TotalSeats:     2,
		SeatsAvailable: 2,
		DriverID:       driver.ID,
	})
	ctx := context.Background()

	passengerSvc := api.NewReservationService(newClient(t, srv, passenger.ID))
	res, err := passengerSvc.Create(ctx, api.CreateReservation{
		TripID:      trip.ID,
		Seats:       2,
		PickupPoint: "Campus Sur",
	})
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if res.Status != models.ReservationStatusPending {
		t.Fatalf("expected pending reservation, got %+v", res)
	}

	stored, _ := srv.Trip(trip.ID)
	if stored.SeatsAvailable != 0 || stored.Status != models.TripStatusFull {
		t.Fatalf("seats not decremented server-side: %+v", stored)
	}

	driverSvc := api.NewReservationService(newClient(t, srv, driver.ID))
	requests, err := driverSvc.DriverRequests(ctx)
	if err != nil {
		t.Fatalf("driver requests failed: %v", err)
	}
	if len(requests) != 1 || requests[0].ID != res.ID {
		t.Fatalf("driver does not see the request: %+v", requests)
	}

	perTrip, err := driverSvc.ForTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("per-trip listing failed: %v", err)
	}
	if len(perTrip) != 1 || perTrip[0].ID != res.ID {
		t.Fatalf("per-trip listing missed the reservation: %+v", perTrip)
	}

	accepted, err := driverSvc.Accept(ctx, res.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != models.ReservationStatusAccepted {
		t.Fatalf("expected accepted status, got %+v", accepted)
	}
}

func TestTripUpdate(t *testing.T) {
	srv := wheelstest.NewServer()
	defer srv.Close()
	driver := srv.AddUser("ana@uni.edu", "secret", "Ana")
	other := srv.AddUser("eva@uni.edu", "secret", "Eva")
	trip := srv.AddTrip(models.Trip{
		Origin:         "Campus Norte",
		Destination:    "Terminal",
		Departure:      models.NewAPITime(time.Now().Add(12 * time.Hour)),
		Fare:           4000,
		TotalSeats:     4,
		SeatsAvailable: 3,
		DriverID:       driver.ID,
	})
	ctx := context.Background()

	svc := api.NewTripService(newClient(t, srv, driver.ID))
	updated, err := svc.Update(ctx, trip.ID, api.CreateTrip{
		Fare:       6000,
		TotalSeats: 5,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Fare != 6000 || updated.TotalSeats != 5 {
		t.Fatalf("update not applied: %+v", updated)
	}
	// the one already-reserved seat stays reserved
	if updated.SeatsAvailable != 4 {
		t.Fatalf("expected 4 seats left after growing to 5, got %d", updated.SeatsAvailable)
	}
	stored, _ := srv.Trip(trip.ID)
	if stored.Fare != 6000 || stored.Origin != "Campus Norte" {
		t.Fatalf("unexpected server-side state: %+v", stored)
	}

	otherSvc := api.NewTripService(newClient(t, srv, other.ID))
	if _, err := otherSvc.Update(ctx, trip.ID, api.CreateTrip{Fare: 9000}); err == nil {
		t.Fatal("expected update of someone else's trip to fail")
	}
}

func TestRolesAndNotifications(t *testing.T) {
	srv := wheelstest.NewServer()
	defer srv.Close()
	user := srv.AddUser("ana@uni.edu", "secret", "Ana")
	srv.SetRoles(user.ID, []models.Role{{Name: models.RoleNameDriver, Active: true}})
	srv.AddNotification(user.ID, "reservation accepted", false)
	srv.AddNotification(user.ID, "old news", true)
	client := newClient(t, srv, user.ID)
	ctx := context.Background()

	roles, err := api.NewRoleService(client).ForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("roles failed: %v", err)
	}
	if len(roles) != 1 || !roles[0].IsActiveDriver() {
		t.Fatalf("unexpected roles: %+v", roles)
	}

	notifSvc := api.NewNotificationService(client)
	count, err := notifSvc.UnreadCount(ctx)
	if err != nil {
		t.Fatalf("unread count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 unread, got %d", count)
	}

	if err := notifSvc.MarkAllRead(ctx); err != nil {
		t.Fatalf("mark all read failed: %v", err)
	}
	if count, _ = notifSvc.UnreadCount(ctx); count != 0 {
		t.Fatalf("expected 0 unread after mark-all, got %d", count)
	}
}

func TestLocationFindOrCreate(t *testing.T) {
	srv := wheelstest.NewServer()
	defer srv.Close()
	user := srv.AddUser("ana@uni.edu", "secret", "Ana")
	existing := srv.AddLocation("Campus Norte")
	client := newClient(t, srv, user.ID)
	ctx := context.Background()

	svc := api.NewLocationService(client)
	loc, err := svc.FindOrCreate(ctx, "campus norte")
	if err != nil {
		t.Fatalf("find-or-create failed: %v", err)
	}
	if loc.ID != existing.ID {
		t.Fatalf("expected dedupe onto %d, got %+v", existing.ID, loc)
	}

	fresh, err := svc.FindOrCreate(ctx, "Terminal Sur")
	if err != nil {
		t.Fatalf("find-or-create failed: %v", err)
	}
	if fresh.ID == existing.ID || fresh.Name != "Terminal Sur" {
		t.Fatalf("unexpected created location: %+v", fresh)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 locations, got %+v", list)
	}
}
