package dateutil

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAgeCalculation tests the age calculation function with various scenarios
func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
	}{
		{"Exact birthday", Date(1992, 3, 15), Date(2025, 3, 15), 33},
		{"Day before birthday", Date(1992, 3, 15), Date(2025, 3, 14), 32},
		{"Month after birthday", Date(1992, 3, 15), Date(2025, 10, 31), 33},
		{"Leap day birth, non-leap check", Date(2004, 2, 29), Date(2025, 2, 28), 20},
		{"Leap day birth, leap check", Date(2004, 2, 29), Date(2024, 2, 29), 20},
		{"Turns 21 at month end", Date(2004, 10, 31), Date(2025, 10, 31), 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, Age(tt.birthDate, tt.atDate))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-08-11")
	require.NoError(t, err)
	assert.Equal(t, Date(2025, time.August, 11), d)

	d, err = ParseDate(" 2025-08-11 ")
	require.NoError(t, err)
	assert.Equal(t, 11, d.Day())

	for _, bad := range []string{"", "11-08-2025", "2025-13-01", "2025/08/11", "yesterday"} {
		_, err := ParseDate(bad)
		assert.True(t, errors.Is(err, ErrMalformedDate), "input %q", bad)
	}
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2025-12-31")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.December, d.Month())

	_, err = ParseOptionalDate("31-12-2025")
	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestMonthBoundaries(t *testing.T) {
	assert.Equal(t, Date(2025, 2, 28), EndOfMonth(2025, time.February))
	assert.Equal(t, Date(2024, 2, 29), EndOfMonth(2024, time.February))
	assert.Equal(t, Date(2025, 8, 1), StartOfMonth(2025, time.August))
	assert.Equal(t, Date(2025, 9, 30), EndOfMonth(2025, time.September))
}

func TestWeekdaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"August 2025 whole month", Date(2025, 8, 1), Date(2025, 8, 31), 21},
		{"August 2025 from the 11th", Date(2025, 8, 11), Date(2025, 8, 31), 15},
		{"October 2025 whole month", Date(2025, 10, 1), Date(2025, 10, 31), 23},
		{"February 2025", Date(2025, 2, 1), Date(2025, 2, 28), 20},
		{"Single Saturday", Date(2025, 8, 9), Date(2025, 8, 9), 0},
		{"Single Monday", Date(2025, 8, 11), Date(2025, 8, 11), 1},
		{"Inverted range", Date(2025, 8, 31), Date(2025, 8, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekdaysBetween(tt.from, tt.to))
		})
	}
}

func TestWeekdaysBetweenIgnoresClock(t *testing.T) {
	from := time.Date(2025, 8, 11, 17, 30, 0, 0, time.UTC)
	to := time.Date(2025, 8, 15, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, WeekdaysBetween(from, to))
}
