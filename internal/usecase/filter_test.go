package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flight-search/flight-query-planner/internal/domain"
)

func flightIDs(flights []domain.Flight) []string {
	ids := make([]string, len(flights))
	for i, f := range flights {
		ids[i] = f.ID
	}
	return ids
}

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		createFlightAt("F1", 500, 0, "AA", 6),
		createFlightAt("F2", 250, 1, "DL", 10),
		createFlightAt("F3", 200, 2, "UA", 14),
		createFlightAt("F4", 320, 0, "aa", 21),
	}
}

// =====================================================
// ApplyPreferences Tests
// =====================================================

func TestApplyPreferences(t *testing.T) {
	tests := []struct {
		name  string
		prefs *domain.Preferences
		want  []string
	}{
		{
			name:  "nil preferences keep everything",
			prefs: nil,
			want:  []string{"F1", "F2", "F3", "F4"},
		},
		{
			name:  "empty preferences keep everything",
			prefs: &domain.Preferences{},
			want:  []string{"F1", "F2", "F3", "F4"},
		},
		{
			name:  "max price is inclusive",
			prefs: &domain.Preferences{MaxPrice: floatPtr(320)},
			want:  []string{"F2", "F3", "F4"},
		},
		{
			name:  "max stops",
			prefs: &domain.Preferences{MaxStops: intPtr(0)},
			want:  []string{"F1", "F4"},
		},
		{
			name:  "preferred airlines are case-insensitive",
			prefs: &domain.Preferences{PreferredAirlines: []string{" aa "}},
			want:  []string{"F1", "F4"},
		},
		{
			name:  "excluded airlines",
			prefs: &domain.Preferences{ExcludedAirlines: []string{"DL", "ua"}},
			want:  []string{"F1", "F4"},
		},
		{
			name:  "departure window",
			prefs: &domain.Preferences{DepartureTimeWindow: &domain.TimeWindow{Start: "09:00", End: "15:00"}},
			want:  []string{"F2", "F3"},
		},
		{
			name: "combined",
			prefs: &domain.Preferences{
				MaxPrice:          floatPtr(400),
				ExcludedAirlines:  []string{"UA"},
				PreferredAirlines: []string{"DL", "AA"},
			},
			want: []string{"F2", "F4"},
		},
		{
			name:  "nothing matches",
			prefs: &domain.Preferences{MaxPrice: floatPtr(10)},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyPreferences(sampleFlights(), tt.prefs)
			assert.Equal(t, tt.want, flightIDs(got))
		})
	}
}

func TestApplyPreferences_ReturnWindow(t *testing.T) {
	outbound := createFlightAt("F1", 300, 0, "AA", 8)
	early := outbound
	early.ID = "RT-early"
	early.Inbound = &domain.FlightPoint{AirportCode: "LAX", DateTime: time.Date(2025, 12, 20, 7, 0, 0, 0, time.UTC)}
	late := outbound
	late.ID = "RT-late"
	late.Inbound = &domain.FlightPoint{AirportCode: "LAX", DateTime: time.Date(2025, 12, 20, 19, 0, 0, 0, time.UTC)}

	prefs := &domain.Preferences{ReturnTimeWindow: &domain.TimeWindow{Start: "12:00", End: "23:59"}}

	got := ApplyPreferences([]domain.Flight{outbound, early, late}, prefs)

	assert.Equal(t, []string{"F1", "RT-late"}, flightIDs(got), "one-way flights ignore the return window")
}

func TestApplyPreferences_MatchesDomain(t *testing.T) {
	prefs := &domain.Preferences{
		MaxPrice:            floatPtr(450),
		MaxStops:            intPtr(1),
		ExcludedAirlines:    []string{"DL"},
		DepartureTimeWindow: &domain.TimeWindow{Start: "05:00", End: "22:00"},
	}

	filtered := ApplyPreferences(sampleFlights(), prefs)

	var expected []string
	for _, f := range sampleFlights() {
		if prefs.MatchesFlight(f) {
			expected = append(expected, f.ID)
		}
	}
	assert.Equal(t, expected, flightIDs(filtered))
}

func TestApplyPreferences_DoesNotMutateInput(t *testing.T) {
	flights := sampleFlights()

	_ = ApplyPreferences(flights, &domain.Preferences{MaxPrice: floatPtr(100)})

	assert.Equal(t, []string{"F1", "F2", "F3", "F4"}, flightIDs(flights))
}

// =====================================================
// Single Criterion Tests
// =====================================================

func TestApplyPreferences_SingleCriterion(t *testing.T) {
	tests := []struct {
		name     string
		prefs    domain.Preferences
		expected []string
	}{
		{"max price", domain.Preferences{MaxPrice: floatPtr(300)}, []string{"F2", "F3"}},
		{"max stops", domain.Preferences{MaxStops: intPtr(1)}, []string{"F1", "F2", "F4"}},
		{"preferred airline is case-insensitive", domain.Preferences{PreferredAirlines: []string{"ua"}}, []string{"F3"}},
		{"excluded airline", domain.Preferences{ExcludedAirlines: []string{"AA"}}, []string{"F2", "F3"}},
		{"departure window", domain.Preferences{DepartureTimeWindow: &domain.TimeWindow{Start: "20:00", End: "23:00"}}, []string{"F4"}},
		{"empty preferences", domain.Preferences{ExcludedAirlines: []string{}}, []string{"F1", "F2", "F3", "F4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := tt.prefs
			assert.Equal(t, tt.expected, flightIDs(ApplyPreferences(sampleFlights(), &prefs)))
		})
	}
}
