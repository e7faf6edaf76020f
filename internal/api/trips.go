package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/wheels/wheels-go/internal/models"
)

type TripService struct {
	c *Client
}

func NewTripService(c *Client) *TripService {
	return &TripService{c: c}
}

// CreateTrip is the payload for publishing a new trip.
type CreateTrip struct {
	Origin      string         `json:"origen"`
	Destination string         `json:"destino"`
	Departure   models.APITime `json:"fecha_salida"`
	TotalSeats  int            `json:"cupos_totales"`
	Fare        int            `json:"tarifa"`
	VehicleID   uint           `json:"id_vehiculo"`
}

func (s *TripService) Create(ctx context.Context, in CreateTrip) (models.Trip, error) {
	var out struct {
		Trip models.Trip `json:"viaje"`
	}
	if err := s.c.post(ctx, "/viajes", in, &out); err != nil {
		return models.Trip{}, withFallback(err, "could not create trip")
	}
	return out.Trip, nil
}

// AvailableQuery narrows the server-side listing. These are the only
// filters the backend understands; everything else is applied locally by
// the trips package.
type AvailableQuery struct {
	Origin      string
	Destination string
	Date        time.Time
}

func (s *TripService) Available(ctx context.Context, q AvailableQuery) ([]models.Trip, error) {
	params := url.Values{}
	if q.Origin != "" {
		params.Set("origen", q.Origin)
	}
	if q.Destination != "" {
		params.Set("destino", q.Destination)
	}
	if !q.Date.IsZero() {
		params.Set("fecha", q.Date.Format("2006-01-02"))
	}
	var out []models.Trip
	if err := s.c.get(ctx, "/viajes/disponibles", params, &out); err != nil {
		return nil, withFallback(err, "could not fetch available trips")
	}
	return out, nil
}

func (s *TripService) Mine(ctx context.Context) ([]models.Trip, error) {
	var out []models.Trip
	if err := s.c.get(ctx, "/viajes/mis-viajes", nil, &out); err != nil {
		return nil, withFallback(err, "could not fetch your trips")
	}
	return out, nil
}

func (s *TripService) Get(ctx context.Context, id uint) (models.Trip, error) {
	var out models.Trip
	if err := s.c.get(ctx, fmt.Sprintf("/viajes/%d", id), nil, &out); err != nil {
		return models.Trip{}, withFallback(err, "could not fetch trip")
	}
	return out, nil
}

func (s *TripService) Update(ctx context.Context, id uint, in CreateTrip) (models.Trip, error) {
	var out struct {
		Trip models.Trip `json:"viaje"`
	}
	if err := s.c.put(ctx, fmt.Sprintf("/viajes/%d", id), in, &out); err != nil {
		return models.Trip{}, withFallback(err, "could not update trip")
	}
	return out.Trip, nil
}

// Cancel asks the backend to cancel a trip the caller drives.
func (s *TripService) Cancel(ctx context.Context, id uint) error {
	if err := s.c.delete(ctx, fmt.Sprintf("/viajes/%d", id), nil); err != nil {
		return withFallback(err, "could not cancel trip")
	}
	return nil
}

// Complete marks a finished trip as completed.
func (s *TripService) Complete(ctx context.Context, id uint) (models.Trip, error) {
	var out struct {
		Trip models.Trip `json:"viaje"`
	}
	if err := s.c.put(ctx, fmt.Sprintf("/viajes/%d/completar", id), struct{}{}, &out); err != nil {
		return models.Trip{}, withFallback(err, "could not complete trip")
	}
	return out.Trip, nil
}
