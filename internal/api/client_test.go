package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestServerMessagePassesThroughVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "ya tienes un viaje activo"})
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	_, err := NewTripService(client).Mine(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "ya tienes un viaje activo" {
		t.Fatalf("server message altered: %q", err.Error())
	}
}

func TestMessageFieldAlsoAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "fecha invalida"})
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	_, err := NewTripService(client).Mine(context.Background())
	if err == nil || err.Error() != "fecha invalida" {
		t.Fatalf("expected message field passthrough, got %v", err)
	}
}

func TestEmptyErrorBodyGetsActionFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	_, err := NewTripService(client).Mine(context.Background())
	if err == nil || err.Error() != "could not fetch your trips" {
		t.Fatalf("expected fallback message, got %v", err)
	}
}

func TestTransportFailureIsErrUnreachable(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://127.0.0.1:1/api", Timeout: time.Second})
	_, err := NewTripService(client).Mine(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestRequestCarriesIDAndBearer(t *testing.T) {
	var gotID, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	client.SetToken("tok-123")
	if _, err := NewTripService(client).Mine(context.Background()); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotID == "" {
		t.Fatal("missing X-Request-ID header")
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}

	client.ClearToken()
	if _, err := NewTripService(client).Mine(context.Background()); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization sent after ClearToken: %q", gotAuth)
	}
}

func TestIsAuthError(t *testing.T) {
	if !IsAuthError(&APIError{StatusCode: http.StatusUnauthorized}) {
		t.Fatal("401 should be an auth error")
	}
	if IsAuthError(&APIError{StatusCode: http.StatusForbidden}) {
		t.Fatal("403 is not an auth error")
	}
	if IsAuthError(errors.New("boom")) {
		t.Fatal("plain errors are not auth errors")
	}
}

func TestImageURL(t *testing.T) {
	base := "http://localhost:3001/api"
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"empty", "", ""},
		{"absolute", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"rooted path", "/uploads/perfil/7.jpg", "http://localhost:3001/uploads/perfil/7.jpg"},
		{"bare path", "uploads/perfil/7.jpg", "http://localhost:3001/uploads/perfil/7.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImageURL(base, tt.ref); got != tt.want {
				t.Fatalf("ImageURL(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}
