package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocation(t *testing.T) {
	ClearLocationCache()

	loc, err := GetLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	cached, err := GetLocation("America/New_York")
	require.NoError(t, err)
	assert.Same(t, loc, cached)

	_, err = GetLocation("Invalid/Zone")
	assert.Error(t, err)
}

func TestMustGetLocation_Panics(t *testing.T) {
	assert.Panics(t, func() { MustGetLocation("Invalid/Zone") })
	assert.NotPanics(t, func() { MustGetLocation(UTC) })
}

func TestCalendarDate(t *testing.T) {
	ny := MustGetLocation("America/New_York")

	// 02:00 UTC on the 15th is still the 14th in New York.
	instant := time.Date(2025, 12, 15, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-12-14", FormatDate(CalendarDate(instant, ny)))
	assert.Equal(t, "2025-12-15", FormatDate(CalendarDate(instant, nil)))
	assert.Equal(t, time.UTC, CalendarDate(instant, ny).Location())
}

func TestDaysUntil(t *testing.T) {
	// 2025-12-15 is a Monday.
	monday := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		wd   time.Weekday
		want int
	}{
		{"tuesday is next day", time.Tuesday, 1},
		{"saturday", time.Saturday, 5},
		{"sunday", time.Sunday, 6},
		{"same weekday is a week away", time.Monday, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(monday, tt.wd))
		})
	}
}

func TestFirstOfNextMonth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-12-15", "2026-01-01"},
		{"2025-01-31", "2025-02-01"},
		{"2024-02-29", "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatDate(FirstOfNextMonth(d)))
		})
	}
}

func TestAddDays(t *testing.T) {
	d, err := ParseDate("2025-12-30")
	require.NoError(t, err)

	assert.Equal(t, "2026-01-02", FormatDate(AddDays(d, 3)))
	assert.Equal(t, "2025-12-27", FormatDate(AddDays(d, -3)))
}
