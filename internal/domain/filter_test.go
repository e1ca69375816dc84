package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortOption_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		option SortOption
		want   bool
	}{
		{name: "best value is valid", option: SortByBestValue, want: true},
		{name: "price is valid", option: SortByPrice, want: true},
		{name: "duration is valid", option: SortByDuration, want: true},
		{name: "departure is valid", option: SortByDeparture, want: true},
		{name: "invalid option", option: SortOption("invalid"), want: false},
		{name: "empty option", option: SortOption(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.option.IsValid())
		})
	}
}

func TestParseSortOption(t *testing.T) {
	tests := []struct {
		input    string
		expected SortOption
	}{
		{input: "best", expected: SortByBestValue},
		{input: "best_value", expected: SortByBestValue},
		{input: "PRICE", expected: SortByPrice},
		{input: "duration", expected: SortByDuration},
		{input: "departure", expected: SortByDeparture},
		{input: "invalid", expected: SortByBestValue},
		{input: "", expected: SortByBestValue},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSortOption(tt.input))
		})
	}
}

func sampleFlight() Flight {
	return Flight{
		ID:        "f1",
		Airline:   AirlineInfo{Code: "AA", Name: "American Airlines"},
		Departure: FlightPoint{AirportCode: "JFK", DateTime: time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)},
		Arrival:   FlightPoint{AirportCode: "LAX", DateTime: time.Date(2025, 6, 1, 11, 45, 0, 0, time.UTC)},
		Price:     PriceInfo{Amount: 320, Currency: "USD"},
		Stops:     1,
	}
}

func TestPreferences_MatchesFlight(t *testing.T) {
	price := func(v float64) *float64 { return &v }
	stops := func(v int) *int { return &v }

	tests := []struct {
		name  string
		prefs *Preferences
		want  bool
	}{
		{name: "nil preferences", prefs: nil, want: true},
		{name: "empty preferences", prefs: &Preferences{}, want: true},
		{name: "under max price", prefs: &Preferences{MaxPrice: price(400)}, want: true},
		{name: "over max price", prefs: &Preferences{MaxPrice: price(300)}, want: false},
		{name: "too many stops", prefs: &Preferences{MaxStops: stops(0)}, want: false},
		{name: "preferred airline case-insensitive", prefs: &Preferences{PreferredAirlines: []string{"aa"}}, want: true},
		{name: "not a preferred airline", prefs: &Preferences{PreferredAirlines: []string{"DL"}}, want: false},
		{name: "excluded airline", prefs: &Preferences{ExcludedAirlines: []string{"AA"}}, want: false},
		{name: "inside departure window", prefs: &Preferences{DepartureTimeWindow: &TimeWindow{Start: "06:00", End: "09:00"}}, want: true},
		{name: "outside departure window", prefs: &Preferences{DepartureTimeWindow: &TimeWindow{Start: "12:00", End: "18:00"}}, want: false},
		{name: "return window ignored for one-way", prefs: &Preferences{ReturnTimeWindow: &TimeWindow{Start: "12:00", End: "18:00"}}, want: true},
		{name: "informational fields never filter", prefs: &Preferences{CheckedBags: stops(2), SeatPreference: "aisle"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prefs.MatchesFlight(sampleFlight()))
		})
	}
}

func TestPreferences_MatchesFlight_ReturnWindow(t *testing.T) {
	f := sampleFlight()
	f.Inbound = &FlightPoint{AirportCode: "LAX", DateTime: time.Date(2025, 6, 8, 20, 0, 0, 0, time.UTC)}

	prefs := &Preferences{ReturnTimeWindow: &TimeWindow{Start: "06:00", End: "12:00"}}
	assert.False(t, prefs.MatchesFlight(f))

	prefs.ReturnTimeWindow.End = "21:00"
	assert.True(t, prefs.MatchesFlight(f))
}

func TestPreferences_Validate(t *testing.T) {
	negative := -1.0
	negativeInt := -1

	tests := []struct {
		name      string
		prefs     *Preferences
		wantField string
	}{
		{name: "nil", prefs: nil},
		{name: "valid window", prefs: &Preferences{DepartureTimeWindow: &TimeWindow{Start: "06:00", End: "12:00"}}},
		{name: "negative price", prefs: &Preferences{MaxPrice: &negative}, wantField: "preferences.maxPrice"},
		{name: "negative stops", prefs: &Preferences{MaxStops: &negativeInt}, wantField: "preferences.maxStops"},
		{name: "negative bags", prefs: &Preferences{CheckedBags: &negativeInt}, wantField: "preferences.checkedBags"},
		{name: "bad clock", prefs: &Preferences{DepartureTimeWindow: &TimeWindow{Start: "6am", End: "12:00"}}, wantField: "preferences.departureTimeWindow"},
		{name: "inverted window", prefs: &Preferences{ReturnTimeWindow: &TimeWindow{Start: "18:00", End: "06:00"}}, wantField: "preferences.returnTimeWindow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prefs.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			ve, ok := AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}
