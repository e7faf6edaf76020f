package wheelstest

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/wheels/wheels-go/internal/models"
)

func withUserID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func requestUserID(r *http.Request) uint {
	id, _ := r.Context().Value(userIDKey).(uint)
	return id
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"correo"`
		Password string `json:"contrasena"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	s.mu.Lock()
	acc, ok := s.accounts[body.Email]
	s.mu.Unlock()
	if !ok || acc.password != body.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":   s.TokenFor(acc.user.ID),
		"usuario": acc.user,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if s.VerifyFails {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	s.mu.Lock()
	user, ok := s.userFor(requestUserID(r))
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, "unknown user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"usuario": user})
}

func (s *Server) handleRoles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	roles := s.roles[urlID(r)]
	s.mu.Unlock()
	if roles == nil {
		roles = []models.Role{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"roles": roles})
}

func (s *Server) handleMyVehicles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := append([]models.Vehicle{}, s.vehicles[requestUserID(r)]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleRegisterVehicle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}
	capacity, _ := strconv.Atoi(r.FormValue("capacidad"))
	v := models.Vehicle{
		Plate:    r.FormValue("placa"),
		Brand:    r.FormValue("marca"),
		Model:    r.FormValue("modelo"),
		Capacity: capacity,
	}
	v = s.AddVehicle(requestUserID(r), v)
	writeJSON(w, http.StatusCreated, map[string]any{"vehiculo": v})
}

func (s *Server) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	userID, id := requestUserID(r), urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.vehicles[userID]
	for i, v := range list {
		if v.ID == id {
			s.vehicles[userID] = append(list[:i], list[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "vehicle not found")
}

func (s *Server) handleAvailableTrips(w http.ResponseWriter, r *http.Request) {
	origin := strings.ToLower(r.URL.Query().Get("origen"))
	destination := strings.ToLower(r.URL.Query().Get("destino"))
	s.mu.Lock()
	out := make([]models.Trip, 0, len(s.trips))
	for _, t := range s.trips {
		if origin != "" && !strings.Contains(strings.ToLower(t.Origin), origin) {
			continue
		}
		if destination != "" && !strings.Contains(strings.ToLower(t.Destination), destination) {
			continue
		}
		out = append(out, *t)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMyTrips(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	s.mu.Lock()
	out := make([]models.Trip, 0)
	for _, t := range s.trips {
		if t.DriverID == userID {
			out = append(out, *t)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var t models.Trip
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	s.mu.Lock()
	t.ID = s.id()
	t.DriverID = requestUserID(r)
	t.Status = models.TripStatusActive
	t.SeatsAvailable = t.TotalSeats
	s.trips[t.ID] = &t
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"viaje": t})
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	t, ok := s.trips[urlID(r)]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, *t)
}

func (s *Server) handleCancelTrip(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[urlID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	if t.DriverID != requestUserID(r) {
		writeError(w, http.StatusForbidden, "not your trip")
		return
	}
	t.Status = models.TripStatusCancelled
	writeJSON(w, http.StatusOK, map[string]string{"message": "cancelled"})
}

func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Origin      string         `json:"origen"`
		Destination string         `json:"destino"`
		Departure   models.APITime `json:"fecha_salida"`
		TotalSeats  int            `json:"cupos_totales"`
		Fare        int            `json:"tarifa"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[urlID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	if t.DriverID != requestUserID(r) {
		writeError(w, http.StatusForbidden, "not your trip")
		return
	}
	if body.Origin != "" {
		t.Origin = body.Origin
	}
	if body.Destination != "" {
		t.Destination = body.Destination
	}
	if !body.Departure.IsZero() {
		t.Departure = body.Departure
	}
	if body.Fare > 0 {
		t.Fare = body.Fare
	}
	if body.TotalSeats > 0 && body.TotalSeats != t.TotalSeats {
		reserved := t.TotalSeats - t.SeatsAvailable
		t.TotalSeats = body.TotalSeats
		t.SeatsAvailable = t.TotalSeats - reserved
		if t.SeatsAvailable < 0 {
			t.SeatsAvailable = 0
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"viaje": *t})
}

func (s *Server) handleCompleteTrip(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[urlID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	if t.DriverID != requestUserID(r) {
		writeError(w, http.StatusForbidden, "not your trip")
		return
	}
	t.Status = models.TripStatusCompleted
	writeJSON(w, http.StatusOK, map[string]any{"viaje": *t})
}

func (s *Server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TripID      uint   `json:"id_viaje"`
		Seats       int    `json:"cupos_reservados"`
		PickupPoint string `json:"punto_recogida"`
		DropPoint   string `json:"punto_destino"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[body.TripID]
	if !ok {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	if t.Status != models.TripStatusActive {
		writeError(w, http.StatusBadRequest, "trip is not active")
		return
	}
	if body.Seats < 1 || body.Seats > t.SeatsAvailable {
		writeError(w, http.StatusBadRequest, "no seats available")
		return
	}
	t.SeatsAvailable -= body.Seats
	if t.SeatsAvailable == 0 {
		t.Status = models.TripStatusFull
	}
	res := &models.Reservation{
		ID:          s.id(),
		TripID:      t.ID,
		PassengerID: requestUserID(r),
		Seats:       body.Seats,
		PickupPoint: body.PickupPoint,
		DropPoint:   body.DropPoint,
		Status:      models.ReservationStatusPending,
		Origin:      t.Origin,
		Destination: t.Destination,
		Departure:   t.Departure,
		Fare:        t.Fare,
	}
	s.reservations[res.ID] = res
	writeJSON(w, http.StatusCreated, map[string]any{"reserva": *res})
}

func (s *Server) handleMyReservations(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	s.mu.Lock()
	out := make([]models.Reservation, 0)
	for _, res := range s.reservations {
		if res.PassengerID == userID {
			out = append(out, *res)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDriverRequests(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	s.mu.Lock()
	out := make([]models.Reservation, 0)
	for _, res := range s.reservations {
		if t, ok := s.trips[res.TripID]; ok && t.DriverID == userID {
			out = append(out, *res)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTripReservations(w http.ResponseWriter, r *http.Request) {
	tripID := urlID(r)
	s.mu.Lock()
	out := make([]models.Reservation, 0)
	for _, res := range s.reservations {
		if res.TripID == tripID {
			out = append(out, *res)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) reservationTransition(status models.ReservationStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		res, ok := s.reservations[urlID(r)]
		if !ok {
			writeError(w, http.StatusNotFound, "reservation not found")
			return
		}
		res.Status = status
		writeJSON(w, http.StatusOK, map[string]any{"reserva": *res})
	}
}

func (s *Server) handleDeleteReservation(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := urlID(r)
	if _, ok := s.reservations[id]; !ok {
		writeError(w, http.StatusNotFound, "reservation not found")
		return
	}
	delete(s.reservations, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]models.Location{}, s.locations...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"nombre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	loc := s.AddLocation(body.Name)
	writeJSON(w, http.StatusCreated, map[string]any{"ubicacion": loc})
}

func (s *Server) handleFindOrCreateLocation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"nombre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	s.mu.Lock()
	for _, loc := range s.locations {
		if strings.EqualFold(loc.Name, body.Name) {
			s.mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]any{"ubicacion": loc})
			return
		}
	}
	s.mu.Unlock()
	loc := s.AddLocation(body.Name)
	writeJSON(w, http.StatusCreated, map[string]any{"ubicacion": loc})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]models.Notification{}, s.notifications[requestUserID(r)]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	count := 0
	for _, n := range s.notifications[requestUserID(r)] {
		if !n.Read {
			count++
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	userID, id := requestUserID(r), urlID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notifications[userID]
	for i := range list {
		if list[i].ID == id {
			list[i].Read = true
			writeJSON(w, http.StatusOK, map[string]any{"notificacion": list[i]})
			return
		}
	}
	writeError(w, http.StatusNotFound, "notification not found")
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	s.mu.Lock()
	list := s.notifications[userID]
	for i := range list {
		list[i].Read = true
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user, ok := s.userFor(requestUserID(r))
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}
	userID := requestUserID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.ID != userID {
			continue
		}
		if v := r.FormValue("nombre"); v != "" {
			acc.user.Name = v
		}
		if v := r.FormValue("telefono"); v != "" {
			acc.user.Phone = v
		}
		writeJSON(w, http.StatusOK, map[string]any{"usuario": acc.user})
		return
	}
	writeError(w, http.StatusNotFound, "user not found")
}
