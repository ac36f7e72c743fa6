package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only date format accepted in payroll input files.
const DateLayout = "2006-01-02"

// ErrMalformedDate is returned when a date string cannot be parsed at all.
var ErrMalformedDate = errors.New("malformed date")

// ParseDate parses a YYYY-MM-DD date in UTC
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
	}
	return t, nil
}

// ParseOptionalDate parses a date that may be left empty. Empty input yields nil.
func ParseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Date builds a UTC calendar date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// StartOfMonth returns the first day of the month
func StartOfMonth(year int, month time.Month) time.Time {
	return Date(year, month, 1)
}

// EndOfMonth returns the last calendar day of the month (at midnight)
func EndOfMonth(year int, month time.Month) time.Time {
	return StartOfMonth(year, month).AddDate(0, 1, -1)
}

// TruncateToDay drops the clock part and normalises to UTC
func TruncateToDay(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// IsWeekday reports whether the date falls on Monday through Friday
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WeekdaysBetween counts Monday–Friday dates in the inclusive range [from, to].
// An inverted range yields zero.
func WeekdaysBetween(from, to time.Time) int {
	from = TruncateToDay(from)
	to = TruncateToDay(to)
	if to.Before(from) {
		return 0
	}
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsWeekday(d) {
			count++
		}
	}
	return count
}
