package api

import (
	"context"
	"fmt"

	"github.com/wheels/wheels-go/internal/models"
)

type RoleService struct {
	c *Client
}

func NewRoleService(c *Client) *RoleService {
	return &RoleService{c: c}
}

// ForUser fetches the role entries the backend holds for a user. An
// empty slice is a real answer, distinct from an error; role resolution
// treats the two differently.
func (s *RoleService) ForUser(ctx context.Context, userID uint) ([]models.Role, error) {
	var out struct {
		Roles []models.Role `json:"roles"`
	}
	path := fmt.Sprintf("/roles/usuario/%d", userID)
	if err := s.c.get(ctx, path, nil, &out); err != nil {
		return nil, withFallback(err, "could not fetch roles")
	}
	return out.Roles, nil
}
