package domain

import (
	"errors"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("dates must be formatted as YYYY-MM-DD")
	ErrEmptyStay   = errors.New("check_out must be after check_in")
)

// Stay is a requested or booked date window [CheckIn, CheckOut).
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// ParseDate parses a YYYY-MM-DD date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseStay parses and validates a check-in/check-out pair.
func ParseStay(checkIn, checkOut string) (Stay, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return Stay{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return Stay{}, err
	}
	s := Stay{CheckIn: in, CheckOut: out}
	return s, s.Validate()
}

// Validate rejects windows where CheckOut is not strictly after CheckIn.
func (s Stay) Validate() error {
	if !s.CheckOut.After(s.CheckIn) {
		return ErrEmptyStay
	}
	return nil
}

// Nights is the number of nights covered by the stay.
func (s Stay) Nights() int {
	return int(s.CheckOut.Sub(s.CheckIn).Hours() / 24)
}

// Conflicts reports whether two windows collide under the booking policy.
// Bounds are inclusive on both sides, so a stay ending on the day another
// begins still conflicts: same-day turnover is not offered.
func (s Stay) Conflicts(other Stay) bool {
	return !s.CheckIn.After(other.CheckOut) && !s.CheckOut.Before(other.CheckIn)
}
