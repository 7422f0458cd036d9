// Package timeslot models the facility's daily booking grid.
//
// Times of day are kept as integer minutes since midnight so that comparisons
// never depend on the lexical form of "HH:MM" strings.
package timeslot

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	MinutesPerDay = 24 * 60
)

var (
	ErrInvalidClock    = errors.New("time must be in HH:MM format")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidInterval = errors.New("start time must be before end time")
)

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock parses a zero-padded 24h "HH:MM" value.
func ParseClock(s string) (Clock, error) {
	if len(s) != len(ClockLayout) {
		return 0, ErrInvalidClock
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, ErrInvalidClock
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// MustClock is ParseClock for constants; it panics on malformed input.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(fmt.Sprintf("timeslot: %q: %v", s, err))
	}
	return c
}

// String formats the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Valid reports whether c falls inside a single day (24:00 allowed as an end bound).
func (c Clock) Valid() bool {
	return c >= 0 && c <= MinutesPerDay
}

// ParseDate parses "YYYY-MM-DD" into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate formats a date as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOf truncates t to its calendar day (in t's location) and returns it as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
