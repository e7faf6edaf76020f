package api

import (
	"context"

	"github.com/wheels/wheels-go/internal/models"
)

type LocationService struct {
	c *Client
}

func NewLocationService(c *Client) *LocationService {
	return &LocationService{c: c}
}

// List returns the shared named-place registry. This endpoint is public;
// it works before login too.
func (s *LocationService) List(ctx context.Context) ([]models.Location, error) {
	var out []models.Location
	if err := s.c.get(ctx, "/ubicaciones", nil, &out); err != nil {
		return nil, withFallback(err, "could not fetch locations")
	}
	return out, nil
}

func (s *LocationService) Create(ctx context.Context, name string) (models.Location, error) {
	var out struct {
		Location models.Location `json:"ubicacion"`
	}
	if err := s.c.post(ctx, "/ubicaciones", map[string]string{"nombre": name}, &out); err != nil {
		return models.Location{}, withFallback(err, "could not create location")
	}
	return out.Location, nil
}

// FindOrCreate resolves a name to an existing location or creates it.
// Duplicate-name races between concurrent creators are the server's
// problem to settle.
func (s *LocationService) FindOrCreate(ctx context.Context, name string) (models.Location, error) {
	var out struct {
		Location models.Location `json:"ubicacion"`
	}
	if err := s.c.post(ctx, "/ubicaciones/buscar-o-crear", map[string]string{"nombre": name}, &out); err != nil {
		return models.Location{}, withFallback(err, "could not resolve location")
	}
	return out.Location, nil
}
