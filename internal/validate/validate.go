// Package validate holds the client-side precondition checks shared by
// every mutating action. Checks run before any network call and produce
// enumerable codes instead of free-text strings so callers can render
// them however they like. The server re-validates everything regardless.
package validate

import "fmt"

// Code identifies a single validation failure.
type Code string

const (
	CodeRequired        Code = "required"
	CodeBlank           Code = "blank"
	CodeSameEndpoints   Code = "same_endpoints"
	CodeNotFuture       Code = "not_future"
	CodeSeatsOutOfRange Code = "seats_out_of_range"
	CodeFareNotPositive Code = "fare_not_positive"
	CodeFareBelowMin    Code = "fare_below_min"
	CodeActiveTripOwned Code = "active_trip_owned"
	CodeOwnTrip         Code = "own_trip"
	CodeTripNotActive   Code = "trip_not_active"
	CodeNoSeatsLeft     Code = "no_seats_left"
	CodeTooManySeats    Code = "too_many_seats"
	CodeStatusClosed    Code = "status_closed"
	CodeTooCloseToStart Code = "too_close_to_start"
	CodeNotStarted      Code = "not_started"
	CodeTooShort        Code = "too_short"
)

// Error is a single field-level validation failure.
type Error struct {
	Field string
	Code  Code
}

func (e Error) Error() string {
	if e.Field == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Code)
}

// Errors collects every failure for a form so the caller can show them
// all at once instead of one per submit.
type Errors []Error

func (es Errors) Error() string {
	switch len(es) {
	case 0:
		return "valid"
	case 1:
		return es[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", es[0].Error(), len(es)-1)
	}
}

// Has reports whether any failure carries the given code.
func (es Errors) Has(code Code) bool {
	for _, e := range es {
		if e.Code == code {
			return true
		}
	}
	return false
}

// OrNil returns the collection as an error, or nil when empty. Returning
// a typed nil slice through an error interface would never compare equal
// to nil, hence the helper.
func (es Errors) OrNil() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

func (es *Errors) add(field string, code Code) {
	*es = append(*es, Error{Field: field, Code: code})
}

// Require appends a failure when the value is empty.
func (es *Errors) Require(field, value string) {
	if value == "" {
		es.add(field, CodeRequired)
	}
}

// Fail appends a failure unconditionally.
func (es *Errors) Fail(field string, code Code) {
	es.add(field, code)
}
