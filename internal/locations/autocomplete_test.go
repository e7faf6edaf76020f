package locations

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wheels/wheels-go/internal/models"
)

type fakeRegistry struct {
	list    []models.Location
	listErr error
	nextID  uint
	created []string
}

func (f *fakeRegistry) List(ctx context.Context) ([]models.Location, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Location, len(f.list))
	copy(out, f.list)
	return out, nil
}

func (f *fakeRegistry) FindOrCreate(ctx context.Context, name string) (models.Location, error) {
	for _, loc := range f.list {
		if strings.EqualFold(loc.Name, name) {
			return loc, nil
		}
	}
	f.nextID++
	loc := models.Location{ID: f.nextID + 100, Name: name}
	f.list = append(f.list, loc)
	f.created = append(f.created, name)
	return loc, nil
}

func seededRegistry() *fakeRegistry {
	return &fakeRegistry{list: []models.Location{
		{ID: 1, Name: "Campus Norte"},
		{ID: 2, Name: "Campus Sur"},
		{ID: 3, Name: "Estacion Central"},
	}}
}

func loaded(t *testing.T, reg *fakeRegistry) *Autocomplete {
	t.Helper()
	ac := New(reg)
	if err := ac.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return ac
}

func names(list []models.Location) []string {
	out := make([]string, len(list))
	for i, loc := range list {
		out[i] = loc.Name
	}
	return out
}

func TestMatchesCaseInsensitiveSubstring(t *testing.T) {
	ac := loaded(t, seededRegistry())

	got := names(ac.Matches("campus"))
	if len(got) != 2 || got[0] != "Campus Norte" || got[1] != "Campus Sur" {
		t.Fatalf("unexpected matches: %v", got)
	}
	if got := ac.Matches("CENTRAL"); len(got) != 1 || got[0].Name != "Estacion Central" {
		t.Fatalf("case-insensitive match failed: %v", names(got))
	}
	if got := ac.Matches(""); len(got) != 3 {
		t.Fatalf("empty query should match everything, got %v", names(got))
	}
	if got := ac.Matches("aeropuerto"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", names(got))
	}
}

func TestExactMatchIgnoresCase(t *testing.T) {
	ac := loaded(t, seededRegistry())

	loc, ok := ac.ExactMatch("campus norte")
	if !ok || loc.ID != 1 {
		t.Fatalf("expected Campus Norte, got %+v ok=%v", loc, ok)
	}
	if _, ok := ac.ExactMatch("Campus"); ok {
		t.Fatal("substring must not count as exact match")
	}
}

func TestCanOfferCreate(t *testing.T) {
	ac := loaded(t, seededRegistry())

	tests := []struct {
		query string
		want  bool
	}{
		{"", false},
		{"ab", false},
		{"  ab  ", false},
		{"abc", true},
		{"ñí", false},
		{"ñíc", true},
		{"Terminal Sur", true},
		{"campus norte", false},
		{"  Campus Norte  ", false},
	}
	for _, tt := range tests {
		if got := ac.CanOfferCreate(tt.query); got != tt.want {
			t.Errorf("CanOfferCreate(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestResolveCreatesAndRefreshes(t *testing.T) {
	reg := seededRegistry()
	ac := loaded(t, reg)

	loc, err := ac.Resolve(context.Background(), "  Terminal Sur  ")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if loc.Name != "Terminal Sur" {
		t.Fatalf("expected trimmed name, got %q", loc.Name)
	}
	if len(reg.created) != 1 || reg.created[0] != "Terminal Sur" {
		t.Fatalf("unexpected create calls: %v", reg.created)
	}
	if _, ok := ac.ExactMatch("Terminal Sur"); !ok {
		t.Fatal("resolved location missing from cache")
	}
}

func TestResolveReturnsExistingWithoutCreate(t *testing.T) {
	reg := seededRegistry()
	ac := loaded(t, reg)

	loc, err := ac.Resolve(context.Background(), "campus sur")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if loc.ID != 2 {
		t.Fatalf("expected existing location, got %+v", loc)
	}
	if len(reg.created) != 0 {
		t.Fatalf("unexpected create calls: %v", reg.created)
	}
}

func TestResolveMergesWhenReloadFails(t *testing.T) {
	reg := seededRegistry()
	ac := loaded(t, reg)

	reg.listErr = errors.New("down")
	loc, err := ac.Resolve(context.Background(), "Terminal Sur")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	got, ok := ac.ExactMatch("Terminal Sur")
	if !ok || got.ID != loc.ID {
		t.Fatal("created location not merged into stale cache")
	}
	if len(ac.All()) != 4 {
		t.Fatalf("expected 4 cached locations, got %d", len(ac.All()))
	}
}
