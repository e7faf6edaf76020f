package api

import (
	"context"

	"github.com/wheels/wheels-go/internal/models"
)

// AuthService talks to the backend's auth endpoints. Persisting the
// resulting token/user pair is the session store's job, not this one's.
type AuthService struct {
	c *Client
}

func NewAuthService(c *Client) *AuthService {
	return &AuthService{c: c}
}

// LoginResult is the token/user pair a successful login returns.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"usuario"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{
		"correo":     email,
		"contrasena": password,
	}
	var out LoginResult
	if err := s.c.post(ctx, "/auth/login", body, &out); err != nil {
		return LoginResult{}, withFallback(err, "could not log in")
	}
	return out, nil
}

// VerifyToken asks the backend whether the installed token is still good
// and returns the refreshed user record.
func (s *AuthService) VerifyToken(ctx context.Context) (models.User, error) {
	var out struct {
		User models.User `json:"usuario"`
	}
	if err := s.c.get(ctx, "/auth/verificar-token", nil, &out); err != nil {
		return models.User{}, withFallback(err, "invalid token")
	}
	return out.User, nil
}
