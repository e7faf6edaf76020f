package api

import (
	"context"

	"github.com/wheels/wheels-go/internal/models"
)

type ProfileService struct {
	c *Client
}

func NewProfileService(c *Client) *ProfileService {
	return &ProfileService{c: c}
}

func (s *ProfileService) Get(ctx context.Context) (models.User, error) {
	var out models.User
	if err := s.c.get(ctx, "/usuarios/perfil", nil, &out); err != nil {
		return models.User{}, withFallback(err, "could not fetch profile")
	}
	return out, nil
}

// UpdateProfile carries the editable profile fields. Empty strings mean
// "leave unchanged" and are not sent. PhotoPath, when set, is uploaded
// as a multipart file part.
type UpdateProfile struct {
	Name      string
	Phone     string
	Password  string
	PhotoPath string
}

func (s *ProfileService) Update(ctx context.Context, in UpdateProfile) (models.User, error) {
	fields := map[string]string{}
	if in.Name != "" {
		fields["nombre"] = in.Name
	}
	if in.Phone != "" {
		fields["telefono"] = in.Phone
	}
	if in.Password != "" {
		fields["contrasena"] = in.Password
	}
	var out struct {
		User models.User `json:"usuario"`
	}
	err := s.c.doMultipart(ctx, "PUT", "/usuarios/perfil", fields, "foto_perfil", in.PhotoPath, &out)
	if err != nil {
		return models.User{}, withFallback(err, "could not update profile")
	}
	return out.User, nil
}
