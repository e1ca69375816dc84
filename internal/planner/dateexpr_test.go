package planner

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
)

func formatDates(dates []time.Time) []string {
	result := make([]string, 0, len(dates))
	for _, d := range dates {
		result = append(result, timeutil.FormatDate(d))
	}
	return result
}

func TestResolveDates_RangeMode(t *testing.T) {
	g := newTestGenerator(WithDateMode(DateModeRange))

	tests := []struct {
		expr     string
		expected []string
	}{
		{expr: "2024-03-10", expected: []string{"2024-03-10"}},
		{expr: "today", expected: []string{"2025-01-15"}},
		{expr: "Tomorrow", expected: []string{"2025-01-16"}},
		{expr: "next-weekend", expected: []string{"2025-01-18", "2025-01-19"}},
		{expr: "following-weekend", expected: []string{"2025-01-25", "2025-01-26"}},
		{expr: "next-week", expected: []string{
			"2025-01-16", "2025-01-17", "2025-01-18", "2025-01-19", "2025-01-20", "2025-01-21", "2025-01-22",
		}},
		{expr: "in-3-days", expected: []string{"2025-01-18"}},
		{expr: "in-1-day", expected: []string{"2025-01-16"}},
		{expr: "next-monday", expected: []string{"2025-01-20"}},
		{expr: "next-wednesday", expected: []string{"2025-01-22"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			dates, err := g.ResolveDates(fieldDepartureDate, tt.expr)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, formatDates(dates))
		})
	}
}

func TestResolveDates_NextMonthRange(t *testing.T) {
	g := newTestGenerator()

	dates, err := g.ResolveDates(fieldDepartureDate, "next-month")

	require.NoError(t, err)
	require.Len(t, dates, 28)
	assert.Equal(t, "2025-02-01", timeutil.FormatDate(dates[0]))
	assert.Equal(t, "2025-02-28", timeutil.FormatDate(dates[27]))
}

func TestResolveDates_AnchorMode(t *testing.T) {
	g := newTestGenerator(WithDateMode(DateModeAnchor))

	tests := []struct {
		expr     string
		expected string
	}{
		{expr: "next-weekend", expected: "2025-01-18"},
		{expr: "following-weekend", expected: "2025-01-25"},
		{expr: "next-week", expected: "2025-01-16"},
		{expr: "next-month", expected: "2025-02-01"},
		{expr: "tomorrow", expected: "2025-01-16"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			dates, err := g.ResolveDates(fieldDepartureDate, tt.expr)

			require.NoError(t, err)
			assert.Equal(t, []string{tt.expected}, formatDates(dates))
		})
	}
}

func TestResolveDates_AnchorIsFirstDayOfRange(t *testing.T) {
	rangeGen := newTestGenerator(WithDateMode(DateModeRange))
	anchorGen := newTestGenerator(WithDateMode(DateModeAnchor))

	for _, expr := range []string{"next-weekend", "following-weekend", "next-week", "next-month"} {
		ranged, err := rangeGen.ResolveDates(fieldDepartureDate, expr)
		require.NoError(t, err)
		anchored, err := anchorGen.ResolveDates(fieldDepartureDate, expr)
		require.NoError(t, err)

		require.Len(t, anchored, 1, expr)
		assert.Greater(t, len(ranged), 1, expr)
		assert.Equal(t, ranged[0], anchored[0], expr)
	}
}

func TestResolveDates_WeekendFromSaturday(t *testing.T) {
	g := New(WithClock(timeutil.NewMockClockFromString("2025-01-18T09:00:00Z")))

	dates, err := g.ResolveDates(fieldDepartureDate, "next-weekend")

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-25", "2025-01-26"}, formatDates(dates))
}

func TestResolveDates_NextMonthInDecember(t *testing.T) {
	g := New(
		WithClock(timeutil.NewMockClockFromString("2024-12-20T09:00:00Z")),
		WithDateMode(DateModeAnchor),
	)

	dates, err := g.ResolveDates(fieldDepartureDate, "next-month")

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-01"}, formatDates(dates))
}

func TestResolveDates_UsesLocationForToday(t *testing.T) {
	// 23:30 UTC is already the next day at UTC+7.
	clock := timeutil.NewMockClockFromString("2025-01-15T23:30:00Z")
	east := time.FixedZone("UTC+7", 7*3600)

	utcDates, err := New(WithClock(clock)).ResolveDates(fieldDepartureDate, "today")
	require.NoError(t, err)
	eastDates, err := New(WithClock(clock), WithLocation(east)).ResolveDates(fieldDepartureDate, "today")
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-01-15"}, formatDates(utcDates))
	assert.Equal(t, []string{"2025-01-16"}, formatDates(eastDates))
}

func TestResolveDates_UnknownDefaultsToTomorrow(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGenerator(WithLogger(zerolog.New(&buf)))

	dates, err := g.ResolveDates(fieldReturnDate, "sometime soon")

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-16"}, formatDates(dates))
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "Unrecognized date expression")
	assert.Contains(t, buf.String(), `"expression":"sometime soon"`)
	assert.Contains(t, buf.String(), `"field":"returnDate"`)
}

func TestResolveDates_OneWay(t *testing.T) {
	g := newTestGenerator()

	for _, expr := range []string{"", "one-way", " ONE-WAY "} {
		dates, err := g.ResolveDates(fieldReturnDate, expr)
		require.NoError(t, err)
		assert.Nil(t, dates)
	}

	_, err := g.ResolveDates(fieldDepartureDate, "one-way")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidRequest(err))
}

func TestResolveDates_Invalid(t *testing.T) {
	g := newTestGenerator()

	tests := []string{"invalid-date", "2023-13-01", "2023-02-29", "2023-00-10"}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			dates, err := g.ResolveDates(fieldReturnDate, expr)

			require.Error(t, err)
			assert.Nil(t, dates)
			ve, ok := domain.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, "returnDate", ve.Field)
			assert.Equal(t, expr, ve.Value)
		})
	}
}

func TestWiden(t *testing.T) {
	d := func(s string) time.Time {
		v, err := timeutil.ParseDate(s)
		if err != nil {
			panic(err)
		}
		return v
	}

	tests := []struct {
		name     string
		dates    []time.Time
		n        int
		expected []string
	}{
		{name: "zero keeps dates", dates: []time.Time{d("2025-01-18")}, n: 0, expected: []string{"2025-01-18"}},
		{name: "single date", dates: []time.Time{d("2025-01-18")}, n: 2, expected: []string{
			"2025-01-16", "2025-01-17", "2025-01-18", "2025-01-19", "2025-01-20",
		}},
		{name: "overlapping windows dedupe", dates: []time.Time{d("2025-01-19"), d("2025-01-18")}, n: 1, expected: []string{
			"2025-01-17", "2025-01-18", "2025-01-19", "2025-01-20",
		}},
		{name: "across month end", dates: []time.Time{d("2025-01-31")}, n: 1, expected: []string{
			"2025-01-30", "2025-01-31", "2025-02-01",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDates(widen(tt.dates, tt.n)))
		})
	}

	assert.Nil(t, widen(nil, 3))
}

func TestParseDateMode(t *testing.T) {
	mode, ok := ParseDateMode("anchor")
	assert.True(t, ok)
	assert.Equal(t, DateModeAnchor, mode)
	assert.Equal(t, "anchor", mode.String())

	mode, ok = ParseDateMode("")
	assert.True(t, ok)
	assert.Equal(t, DateModeRange, mode)
	assert.Equal(t, "range", mode.String())

	_, ok = ParseDateMode("weekly")
	assert.False(t, ok)
}
