package models

import (
	"strings"
	"time"
)

// wire format used by the backend for departure/creation timestamps;
// it carries no zone, so values are interpreted in local time
const apiTimeLayout = "2006-01-02T15:04:05"

// APITime wraps time.Time to cope with the backend's zone-less timestamps.
// RFC3339 values are accepted too in case the backend ever starts sending them.
type APITime struct {
	time.Time
}

func NewAPITime(t time.Time) APITime {
	return APITime{Time: t}
}

func (t *APITime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.ParseInLocation(apiTimeLayout, s, time.Local); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t APITime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.Format(apiTimeLayout) + `"`), nil
}

// SameDate reports whether the timestamp falls on the given calendar day,
// ignoring the time of day.
func (t APITime) SameDate(day time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
