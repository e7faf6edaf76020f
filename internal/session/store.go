// Package session owns the persisted authentication state: one bearer
// token and one serialized user record, the exact pair the browser
// client kept in storage. Presence of both is the sole local
// authentication signal; nothing here checks token validity without
// asking the server.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	logrus "github.com/sirupsen/logrus"

	"github.com/wheels/wheels-go/internal/api"
	"github.com/wheels/wheels-go/internal/models"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// AuthError is a login or verification failure, carrying the backend's
// message or a network-error message.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// EventType classifies a session change.
type EventType string

const (
	EventLogin       EventType = "login"
	EventLogout      EventType = "logout"
	EventUserUpdated EventType = "user-updated"
)

// Event is delivered to subscribers on every session change, replacing
// the browser client's ad hoc storage/custom-event listening.
type Event struct {
	Type EventType
	User *models.User
}

// Store persists the session on disk and mirrors the token onto the
// shared API client. State is read from disk on each access rather than
// cached, so concurrent processes observe each other's changes.
type Store struct {
	dir    string
	client *api.Client
	auth   *api.AuthService

	mu      sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

func NewStore(dir string, client *api.Client) *Store {
	s := &Store{
		dir:    dir,
		client: client,
		auth:   api.NewAuthService(client),
		subs:   make(map[int]func(Event)),
	}
	// Pick up a session left by a previous run, the way the browser
	// client re-read storage and re-installed the axios header.
	if token := s.Token(); token != "" {
		client.SetToken(token)
	}
	return s
}

// Login exchanges credentials for a token/user pair, persists both and
// installs the bearer header for all subsequent requests.
func (s *Store) Login(ctx context.Context, email, password string) error {
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return &AuthError{Message: err.Error(), Err: err}
	}
	if err := s.persist(res.Token, res.User); err != nil {
		return &AuthError{Message: "could not persist session", Err: err}
	}
	s.client.SetToken(res.Token)
	logrus.WithField("user_id", res.User.ID).Info("logged in")
	s.notify(Event{Type: EventLogin, User: &res.User})
	return nil
}

// Logout clears persisted state unconditionally. No server round-trip.
func (s *Store) Logout() {
	_ = os.Remove(filepath.Join(s.dir, tokenFile))
	_ = os.Remove(filepath.Join(s.dir, userFile))
	s.client.ClearToken()
	logrus.Info("logged out")
	s.notify(Event{Type: EventLogout})
}

// IsAuthenticated reports whether both a token and a user record are
// present. It deliberately does not verify the token; use VerifyToken
// for that.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != "" && s.User() != nil
}

// Token returns the persisted bearer token, or "".
func (s *Store) Token() string {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return string(data)
}

// User returns the persisted user record, or nil.
func (s *Store) User() *models.User {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

// TokenExpiry reads the exp claim out of the persisted token without
// verifying the signature. Display only; authentication decisions stay
// with the server.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// VerifyToken validates the session against the server and refreshes
// the cached user record. Any failure forces a logout.
func (s *Store) VerifyToken(ctx context.Context) (*models.User, error) {
	if s.Token() == "" {
		return nil, &AuthError{Message: "no token"}
	}
	user, err := s.auth.VerifyToken(ctx)
	if err != nil {
		logrus.Warnf("token verification failed: %v", err)
		s.Logout()
		return nil, &AuthError{Message: "invalid token", Err: err}
	}
	s.SetUser(user)
	return &user, nil
}

// SetUser replaces the cached user record, used after profile updates
// so every observer sees the fresh data.
func (s *Store) SetUser(u models.User) {
	if data, err := json.Marshal(u); err == nil {
		_ = os.WriteFile(filepath.Join(s.dir, userFile), data, 0o600)
	}
	s.notify(Event{Type: EventUserUpdated, User: &u})
}

// Subscribe registers a callback for session changes and returns its
// cancel function. Callbacks run synchronously on the mutating goroutine.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) persist(token string, user models.User) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), data, 0o600)
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// ErrNotAuthenticated is returned by helpers that need a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// RequireUser returns the persisted user or ErrNotAuthenticated.
func (s *Store) RequireUser() (*models.User, error) {
	if !s.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return s.User(), nil
}
