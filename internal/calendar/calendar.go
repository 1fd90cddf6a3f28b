// Package calendar converts between the Jalali (solar) calendar used on the
// API boundary and the time.Time date values everything below it works with.
// The rest of the service never parses calendar strings itself.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// DateFormat is the wire format for Jalali dates, e.g. "1404-06-15".
const DateFormat = "YYYY-MM-DD"

// ErrInvalidDate is returned when a date string is not a valid Jalali date.
var ErrInvalidDate = errors.New("calendar: invalid jalali date, expected YYYY-MM-DD")

// Location returns the Tehran location. "Today" and time-of-day comparisons
// use Tehran wall clock, not the server's local zone.
func Location() *time.Location {
	return ptime.Iran()
}

// ParseDate parses a Jalali date string into the corresponding Gregorian
// calendar day, normalized to midnight UTC. The returned value carries day
// identity only; time-of-day is always handled separately as TimeString.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	pt := ptime.Date(year, ptime.Month(month), day, 12, 0, 0, 0, ptime.Iran())

	// ptime normalizes out-of-range days (e.g. Esfand 30 in a non-leap year)
	// instead of failing; reject anything that did not round-trip.
	if pt.Year() != year || int(pt.Month()) != month || pt.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	g := pt.Time()
	return time.Date(g.Year(), g.Month(), g.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders the Jalali date string for a Gregorian calendar day.
func FormatDate(t time.Time) string {
	// Noon avoids crossing the day boundary when shifting into Tehran time.
	g := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, ptime.Iran())
	pt := ptime.New(g)
	return fmt.Sprintf("%04d-%02d-%02d", pt.Year(), int(pt.Month()), pt.Day())
}
