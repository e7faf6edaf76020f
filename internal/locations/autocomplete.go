// Package locations implements autocomplete over the shared named-place
// registry: a cached list, substring matching, and a find-or-create
// escape hatch for names the registry does not know yet.
package locations

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/wheels/wheels-go/internal/models"
)

// MinCreateLength is the shortest typed name for which creating a new
// location is offered.
const MinCreateLength = 3

// Source is the slice of the location API the autocomplete needs.
type Source interface {
	List(ctx context.Context) ([]models.Location, error)
	FindOrCreate(ctx context.Context, name string) (models.Location, error)
}

// Autocomplete filters a locally cached location list. The cache is a
// per-screen copy: Load on mount, re-merge after creating.
type Autocomplete struct {
	source Source

	mu     sync.RWMutex
	cached []models.Location
}

func New(source Source) *Autocomplete {
	return &Autocomplete{source: source}
}

// Load refreshes the cache from the server.
func (a *Autocomplete) Load(ctx context.Context) error {
	list, err := a.source.List(ctx)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.cached = list
	a.mu.Unlock()
	return nil
}

// All returns the cached list.
func (a *Autocomplete) All() []models.Location {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]models.Location, len(a.cached))
	copy(out, a.cached)
	return out
}

// Matches returns cached locations whose name contains the query,
// case-insensitively. An empty query matches everything.
func (a *Autocomplete) Matches(query string) []models.Location {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if query == "" {
		out := make([]models.Location, len(a.cached))
		copy(out, a.cached)
		return out
	}
	q := strings.ToLower(query)
	out := make([]models.Location, 0, len(a.cached))
	for _, loc := range a.cached {
		if strings.Contains(strings.ToLower(loc.Name), q) {
			out = append(out, loc)
		}
	}
	return out
}

// ExactMatch finds a cached location whose name equals the query,
// ignoring case.
func (a *Autocomplete) ExactMatch(query string) (models.Location, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, loc := range a.cached {
		if strings.EqualFold(loc.Name, query) {
			return loc, true
		}
	}
	return models.Location{}, false
}

// CanOfferCreate reports whether "create this as a new location" should
// be offered for the typed text: at least MinCreateLength characters
// after trimming, and no exact cached match.
func (a *Autocomplete) CanOfferCreate(query string) bool {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < MinCreateLength {
		return false
	}
	_, exists := a.ExactMatch(trimmed)
	return !exists
}

// Resolve runs find-or-create for the typed name and re-merges the
// result into the cache. Concurrent creators racing on the same name
// are settled server-side.
func (a *Autocomplete) Resolve(ctx context.Context, name string) (models.Location, error) {
	loc, err := a.source.FindOrCreate(ctx, strings.TrimSpace(name))
	if err != nil {
		return models.Location{}, err
	}
	if err := a.Load(ctx); err != nil {
		// The create itself succeeded; a stale cache just misses the
		// new entry until the next Load.
		a.merge(loc)
	}
	return loc, nil
}

func (a *Autocomplete) merge(loc models.Location) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, existing := range a.cached {
		if existing.ID == loc.ID {
			return
		}
	}
	a.cached = append(a.cached, loc)
}
