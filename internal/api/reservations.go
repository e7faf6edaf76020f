package api

import (
	"context"
	"fmt"

	"github.com/wheels/wheels-go/internal/models"
)

type ReservationService struct {
	c *Client
}

func NewReservationService(c *Client) *ReservationService {
	return &ReservationService{c: c}
}

// CreateReservation is the payload for requesting seats on a trip.
type CreateReservation struct {
	TripID      uint   `json:"id_viaje"`
	Seats       int    `json:"cupos_reservados"`
	PickupPoint string `json:"punto_recogida"`
	DropPoint   string `json:"punto_destino,omitempty"`
}

func (s *ReservationService) Create(ctx context.Context, in CreateReservation) (models.Reservation, error) {
	var out struct {
		Reservation models.Reservation `json:"reserva"`
	}
	if err := s.c.post(ctx, "/reservas", in, &out); err != nil {
		return models.Reservation{}, withFallback(err, "could not create reservation")
	}
	return out.Reservation, nil
}

// Mine lists the caller's reservations as a passenger.
func (s *ReservationService) Mine(ctx context.Context) ([]models.Reservation, error) {
	var out []models.Reservation
	if err := s.c.get(ctx, "/reservas/mis-reservas", nil, &out); err != nil {
		return nil, withFallback(err, "could not fetch your reservations")
	}
	return out, nil
}

// DriverRequests lists pending reservation requests across every trip
// the caller drives.
func (s *ReservationService) DriverRequests(ctx context.Context) ([]models.Reservation, error) {
	var out []models.Reservation
	if err := s.c.get(ctx, "/reservas/solicitudes-conductor", nil, &out); err != nil {
		return nil, withFallback(err, "could not fetch reservation requests")
	}
	return out, nil
}

func (s *ReservationService) ForTrip(ctx context.Context, tripID uint) ([]models.Reservation, error) {
	var out []models.Reservation
	if err := s.c.get(ctx, fmt.Sprintf("/reservas/viaje/%d", tripID), nil, &out); err != nil {
		return nil, withFallback(err, "could not fetch trip reservations")
	}
	return out, nil
}

func (s *ReservationService) Accept(ctx context.Context, id uint) (models.Reservation, error) {
	return s.transition(ctx, id, "aceptar", "could not accept reservation")
}

func (s *ReservationService) Reject(ctx context.Context, id uint) (models.Reservation, error) {
	return s.transition(ctx, id, "rechazar", "could not reject reservation")
}

// Cancel marks the reservation cancelled; the record stays visible to
// both sides. Delete removes it outright.
func (s *ReservationService) Cancel(ctx context.Context, id uint) (models.Reservation, error) {
	return s.transition(ctx, id, "cancelar", "could not cancel reservation")
}

func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	if err := s.c.delete(ctx, fmt.Sprintf("/reservas/%d", id), nil); err != nil {
		return withFallback(err, "could not delete reservation")
	}
	return nil
}

func (s *ReservationService) transition(ctx context.Context, id uint, action, fallback string) (models.Reservation, error) {
	var out struct {
		Reservation models.Reservation `json:"reserva"`
	}
	path := fmt.Sprintf("/reservas/%d/%s", id, action)
	if err := s.c.put(ctx, path, struct{}{}, &out); err != nil {
		return models.Reservation{}, withFallback(err, fallback)
	}
	return out.Reservation, nil
}
