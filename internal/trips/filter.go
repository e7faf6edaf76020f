// Package trips holds the client-side trip logic: directory filtering
// over an already-fetched list, and the advisory gates run before trip
// mutations go to the wire.
package trips

import (
	"sort"
	"strings"
	"time"

	"github.com/wheels/wheels-go/internal/models"
)

// Filter narrows a fetched trip list locally; it never re-queries the
// server. Zero values mean "no constraint", except MinSeats where zero
// falls back to the default of one open seat.
type Filter struct {
	Origin      string
	Destination string

	// Date keeps only trips departing on that calendar day. When zero,
	// the default hides trips departing before today.
	Date time.Time

	MinFare *int
	MaxFare *int

	MinSeats int
}

// Apply returns the trips matching every active predicate, sorted
// ascending by departure time. It is pure: same inputs, same output,
// and the input slice is never mutated.
func (f Filter) Apply(list []models.Trip, now time.Time) []models.Trip {
	out := make([]models.Trip, 0, len(list))
	for _, t := range list {
		if f.matches(t, now) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Departure.Before(out[j].Departure.Time)
	})
	return out
}

func (f Filter) matches(t models.Trip, now time.Time) bool {
	if !containsFold(t.Origin, f.Origin) {
		return false
	}
	if !containsFold(t.Destination, f.Destination) {
		return false
	}
	if !f.Date.IsZero() {
		if !t.Departure.SameDate(f.Date) {
			return false
		}
	} else if dateBefore(t.Departure.Time, now) {
		// past trips are never shown unless a date asks for them
		return false
	}
	if f.MinFare != nil && t.Fare < *f.MinFare {
		return false
	}
	if f.MaxFare != nil && t.Fare > *f.MaxFare {
		return false
	}
	minSeats := f.MinSeats
	if minSeats <= 0 {
		minSeats = 1
	}
	return t.SeatsAvailable >= minSeats
}

// containsFold is a case-insensitive substring match; an empty needle
// matches everything.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// dateBefore reports whether a falls on an earlier calendar day than b.
func dateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// IntPtr is a convenience for building fare bounds.
func IntPtr(v int) *int { return &v }
