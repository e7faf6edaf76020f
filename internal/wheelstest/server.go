// Package wheelstest is an in-memory stand-in for the Wheels backend,
// used by the client packages' tests. It mimics the endpoint shapes and
// error bodies the real backend produces; it is test tooling, not a
// server implementation.
package wheelstest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wheels/wheels-go/internal/models"
)

var jwtSecret = []byte("wheelstest-secret")

type account struct {
	password string
	user     models.User
}

// Server is the fake backend. Seed state through the Add/Set helpers,
// point an api.Client at BaseURL(), and exercise the client packages.
type Server struct {
	httpSrv *httptest.Server

	mu            sync.Mutex
	accounts      map[string]*account // by email
	roles         map[uint][]models.Role
	vehicles      map[uint][]models.Vehicle
	trips         map[uint]*models.Trip
	reservations  map[uint]*models.Reservation
	locations     []models.Location
	notifications map[uint][]models.Notification
	nextID        uint

	// VerifyFails forces token verification to 401 regardless of the
	// token, for exercising the forced-logout path.
	VerifyFails bool
}

func NewServer() *Server {
	s := &Server{
		accounts:      make(map[string]*account),
		roles:         make(map[uint][]models.Role),
		vehicles:      make(map[uint][]models.Vehicle),
		trips:         make(map[uint]*models.Trip),
		reservations:  make(map[uint]*models.Reservation),
		notifications: make(map[uint][]models.Notification),
		nextID:        1000,
	}
	r := chi.NewRouter()
	r.Route("/api", s.routes)
	s.httpSrv = httptest.NewServer(r)
	return s
}

func (s *Server) Close() { s.httpSrv.Close() }

// BaseURL is what an api.Client should use as its base URL.
func (s *Server) BaseURL() string { return s.httpSrv.URL + "/api" }

func (s *Server) id() uint {
	s.nextID++
	return s.nextID
}

// AddUser seeds an account and returns its user record.
func (s *Server) AddUser(email, password, name string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{ID: s.id(), Name: name, Email: email}
	s.accounts[email] = &account{password: password, user: u}
	return u
}

func (s *Server) SetRoles(userID uint, roles []models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[userID] = roles
}

func (s *Server) AddVehicle(userID uint, v models.Vehicle) models.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == 0 {
		v.ID = s.id()
	}
	v.OwnerID = userID
	s.vehicles[userID] = append(s.vehicles[userID], v)
	return v
}

func (s *Server) AddTrip(t models.Trip) models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.id()
	}
	if t.Status == "" {
		t.Status = models.TripStatusActive
	}
	s.trips[t.ID] = &t
	return t
}

func (s *Server) AddLocation(name string) models.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc := models.Location{ID: s.id(), Name: name}
	s.locations = append(s.locations, loc)
	return loc
}

func (s *Server) AddNotification(userID uint, message string, read bool) models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := models.Notification{
		ID:        s.id(),
		Message:   message,
		Read:      read,
		CreatedAt: models.NewAPITime(time.Now()),
	}
	s.notifications[userID] = append(s.notifications[userID], n)
	return n
}

// TokenFor mints a token the fake backend will accept for the user.
func (s *Server) TokenFor(userID uint) string {
	claims := jwt.MapClaims{
		"user_id": float64(userID),
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	return token
}

// Reservation returns the stored reservation, for assertions.
func (s *Server) Reservation(id uint) (models.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return models.Reservation{}, false
	}
	return *r, true
}

// Trip returns the stored trip, for assertions.
func (s *Server) Trip(id uint) (models.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[id]
	if !ok {
		return models.Trip{}, false
	}
	return *t, true
}

func (s *Server) routes(r chi.Router) {
	r.Post("/auth/login", s.handleLogin)
	r.Get("/ubicaciones", s.handleListLocations)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/auth/verificar-token", s.handleVerify)
		r.Get("/roles/usuario/{id}", s.handleRoles)

		r.Get("/vehiculos", s.handleMyVehicles)
		r.Post("/vehiculos/registro", s.handleRegisterVehicle)
		r.Delete("/vehiculos/{id}", s.handleDeleteVehicle)

		r.Get("/viajes/disponibles", s.handleAvailableTrips)
		r.Get("/viajes/mis-viajes", s.handleMyTrips)
		r.Post("/viajes", s.handleCreateTrip)
		r.Get("/viajes/{id}", s.handleGetTrip)
		r.Put("/viajes/{id}", s.handleUpdateTrip)
		r.Put("/viajes/{id}/completar", s.handleCompleteTrip)
		r.Delete("/viajes/{id}", s.handleCancelTrip)

		r.Post("/reservas", s.handleCreateReservation)
		r.Get("/reservas/mis-reservas", s.handleMyReservations)
		r.Get("/reservas/solicitudes-conductor", s.handleDriverRequests)
		r.Get("/reservas/viaje/{id}", s.handleTripReservations)
		r.Put("/reservas/{id}/aceptar", s.reservationTransition(models.ReservationStatusAccepted))
		r.Put("/reservas/{id}/rechazar", s.reservationTransition(models.ReservationStatusRejected))
		r.Put("/reservas/{id}/cancelar", s.reservationTransition(models.ReservationStatusCancelled))
		r.Delete("/reservas/{id}", s.handleDeleteReservation)

		r.Post("/ubicaciones", s.handleCreateLocation)
		r.Post("/ubicaciones/buscar-o-crear", s.handleFindOrCreateLocation)

		r.Get("/notificaciones", s.handleNotifications)
		r.Get("/notificaciones/no-leidas/count", s.handleUnreadCount)
		r.Put("/notificaciones/{id}/leida", s.handleMarkRead)
		r.Put("/notificaciones/todas/leidas", s.handleMarkAllRead)

		r.Get("/usuarios/perfil", s.handleGetProfile)
		r.Put("/usuarios/perfil", s.handleUpdateProfile)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func urlID(r *http.Request) uint {
	id, _ := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	return uint(id)
}

type ctxKey string

const userIDKey ctxKey = "user_id"

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}
		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims := token.Claims.(jwt.MapClaims)
		userID := uint(claims["user_id"].(float64))
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

func (s *Server) userFor(id uint) (models.User, bool) {
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			return acc.user, true
		}
	}
	return models.User{}, false
}
