package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wheels/wheels-go/internal/api"
	"github.com/wheels/wheels-go/internal/wheelstest"
)

func newTestStore(t *testing.T) (*Store, *wheelstest.Server) {
	t.Helper()
	srv := wheelstest.NewServer()
	t.Cleanup(srv.Close)
	client := api.NewClient(api.Options{BaseURL: srv.BaseURL()})
	return NewStore(t.TempDir(), client), srv
}

func TestLoginPersistsSession(t *testing.T) {
	store, srv := newTestStore(t)
	srv.AddUser("ana@uni.edu", "secret", "Ana")

	if store.IsAuthenticated() {
		t.Fatal("fresh store should not be authenticated")
	}
	if err := store.Login(context.Background(), "ana@uni.edu", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Fatal("expected authenticated after login")
	}
	user := store.User()
	if user == nil || user.Name != "Ana" {
		t.Fatalf("unexpected persisted user: %+v", user)
	}
	if store.Token() == "" {
		t.Fatal("expected persisted token")
	}
}

func TestLoginFailureCarriesServerMessage(t *testing.T) {
	store, srv := newTestStore(t)
	srv.AddUser("ana@uni.edu", "secret", "Ana")

	err := store.Login(context.Background(), "ana@uni.edu", "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T", err)
	}
	if authErr.Message != "invalid credentials" {
		t.Fatalf("server message not passed through: %q", authErr.Message)
	}
	if store.IsAuthenticated() {
		t.Fatal("failed login must not leave a session behind")
	}
}

func TestLoginNetworkFailure(t *testing.T) {
	client := api.NewClient(api.Options{BaseURL: "http://127.0.0.1:1/api", Timeout: time.Second})
	store := NewStore(t.TempDir(), client)

	err := store.Login(context.Background(), "ana@uni.edu", "secret")
	if err == nil {
		t.Fatal("expected network failure")
	}
	if !errors.Is(err, api.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	store, srv := newTestStore(t)
	srv.AddUser("ana@uni.edu", "secret", "Ana")
	if err := store.Login(context.Background(), "ana@uni.edu", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	store.Logout()

	if store.IsAuthenticated() {
		t.Fatal("expected unauthenticated after logout")
	}
	if store.Token() != "" || store.User() != nil {
		t.Fatal("logout left persisted state behind")
	}
}

func TestLoginInstallsBearerToken(t *testing.T) {
	srv := wheelstest.NewServer()
	t.Cleanup(srv.Close)
	client := api.NewClient(api.Options{BaseURL: srv.BaseURL()})
	store := NewStore(t.TempDir(), client)
	srv.AddUser("ana@uni.edu", "secret", "Ana")

	if err := store.Login(context.Background(), "ana@uni.edu", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	// an authenticated endpoint must now work through the same client
	if _, err := api.NewVehicleService(client).Mine(context.Background()); err != nil {
		t.Fatalf("bearer token not installed: %v", err)
	}

	store.Logout()
	if _, err := api.NewVehicleService(client).Mine(context.Background()); !api.IsAuthError(err) {
		t.Fatalf("expected auth error after logout, got %v", err)
	}
}

func TestNewStoreAdoptsExistingSession(t *testing.T) {
	srv := wheelstest.NewServer()
	t.Cleanup(srv.Close)
	dir := t.TempDir()
	srv.AddUser("ana@uni.edu", "secret", "Ana")

	first := NewStore(dir, api.NewClient(api.Options{BaseURL: srv.BaseURL()}))
	if err := first.Login(context.Background(), "ana@uni.edu", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// a second process over the same directory picks the session up
	client := api.NewClient(api.Options{BaseURL: srv.BaseURL()})
	second := NewStore(dir, client)
	if !second.IsAuthenticated() {
		t.Fatal("expected adopted session")
	}
	if _, err := api.NewVehicleService(client).Mine(context.Background()); err != nil {
		t.Fatalf("adopted token not installed: %v", err)
	}
}

func TestVerifyTokenRefreshesUser(t *testing.T) {
	store, srv := newTestStore(t)
	srv.AddUser("ana@uni.edu", "secret", "Ana")
	if err := store.Login(context.Background(), "ana@uni.edu", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, err := store.VerifyToken(context.Background())
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if user.Name != "Ana" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestVerifyTokenFailureForcesLogout(t *testing.T) {
	store, srv := newTestStore(t)
	srv.AddUser("ana@uni.edu", "secret", "Ana")
	if err := store.Login(context.Background(), "ana@uni.edu", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	srv.VerifyFails = true
	if _, err := store.VerifyToken(context.Background()); err == nil {
		t.Fatal("expected verify failure")
	}
	if store.IsAuthenticated() {
		t.Fatal("failed verification must force logout")
	}
}

func TestVerifyTokenWithoutSession(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.VerifyToken(context.Background()); err == nil {
		t.Fatal("expected error without a token")
	}
}

func TestTokenExpiry(t *testing.T) {
	store, srv := newTestStore(t)
	srv.AddUser("ana@uni.edu", "secret", "Ana")
	if err := store.Login(context.Background(), "ana@uni.edu", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	exp, ok := store.TokenExpiry()
	if !ok {
		t.Fatal("expected an exp claim")
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expected future expiry, got %s", exp)
	}
}

func TestSubscribe(t *testing.T) {
	store, srv := newTestStore(t)
	srv.AddUser("ana@uni.edu", "secret", "Ana")

	var events []EventType
	cancel := store.Subscribe(func(ev Event) {
		events = append(events, ev.Type)
	})

	if err := store.Login(context.Background(), "ana@uni.edu", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	store.Logout()

	if len(events) != 2 || events[0] != EventLogin || events[1] != EventLogout {
		t.Fatalf("unexpected events: %v", events)
	}

	cancel()
	srv.AddUser("eva@uni.edu", "secret", "Eva")
	if err := store.Login(context.Background(), "eva@uni.edu", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatal("unsubscribed callback still ran")
	}
}
