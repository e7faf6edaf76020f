package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wheels/wheels-go/internal/models"
)

type VehicleService struct {
	c *Client
}

func NewVehicleService(c *Client) *VehicleService {
	return &VehicleService{c: c}
}

// Mine lists the vehicles owned by the caller. Besides the garage screen
// this doubles as the role-resolution fallback signal.
func (s *VehicleService) Mine(ctx context.Context) ([]models.Vehicle, error) {
	var out []models.Vehicle
	if err := s.c.get(ctx, "/vehiculos", nil, &out); err != nil {
		return nil, withFallback(err, "could not fetch vehicles")
	}
	return out, nil
}

// RegisterVehicle is the form for registering a vehicle. PhotoPath, when
// set, is uploaded as a multipart file part.
type RegisterVehicle struct {
	Plate     string
	Brand     string
	Model     string
	Capacity  int
	PhotoPath string
}

func (s *VehicleService) Register(ctx context.Context, in RegisterVehicle) (models.Vehicle, error) {
	fields := map[string]string{
		"placa":     in.Plate,
		"marca":     in.Brand,
		"modelo":    in.Model,
		"capacidad": strconv.Itoa(in.Capacity),
	}
	var out struct {
		Vehicle models.Vehicle `json:"vehiculo"`
	}
	err := s.c.doMultipart(ctx, "POST", "/vehiculos/registro", fields, "foto_vehiculo", in.PhotoPath, &out)
	if err != nil {
		return models.Vehicle{}, withFallback(err, "could not register vehicle")
	}
	return out.Vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, id uint) error {
	if err := s.c.delete(ctx, fmt.Sprintf("/vehiculos/%d", id), nil); err != nil {
		return withFallback(err, "could not delete vehicle")
	}
	return nil
}
