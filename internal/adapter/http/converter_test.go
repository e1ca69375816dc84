package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-query-planner/internal/domain"
)

func TestToDomainIntent(t *testing.T) {
	req := &IntentRequest{
		Origins:             []string{"nyc"},
		Destinations:        []string{"LAX", "SFO"},
		DepartureDate:       "next-weekend",
		ReturnDate:          "next-month",
		StayDurationDays:    intPtr(5),
		DateFlexibilityDays: intPtr(2),
		Passengers:          &PassengersDTO{Adults: 2, Children: 1, Infants: 1},
		CabinClass:          "premium-economy",
		Preferences: &PreferencesDTO{
			MaxPrice:          floatPtr(800),
			PreferredAirlines: []string{" sk", "ct "},
			SeatPreference:    " aisle ",
			ReturnTimeRange:   &TimeRangeDTO{Start: "12:00", End: "20:00"},
		},
	}

	intent := ToDomainIntent(req)

	assert.Equal(t, []string{"nyc"}, intent.Origins)
	assert.Equal(t, []string{"LAX", "SFO"}, intent.Destinations)
	assert.Equal(t, "next-weekend", intent.DepartureDateExpression)
	assert.Equal(t, "next-month", intent.ReturnDateExpression)
	assert.Equal(t, 5, *intent.StayDurationDays)
	assert.Equal(t, 2, *intent.DateFlexibilityDays)
	assert.Equal(t, domain.Passengers{Adults: 2, Children: 1, Infants: 1}, intent.Passengers)
	assert.Equal(t, "premium-economy", intent.CabinClass)
	assert.Equal(t, 800.0, *intent.Preferences.MaxPrice)
	assert.Equal(t, []string{"SK", "CT"}, intent.Preferences.PreferredAirlines)
	assert.Equal(t, "aisle", intent.Preferences.SeatPreference)
	assert.Nil(t, intent.Preferences.DepartureTimeWindow)
	require.NotNil(t, intent.Preferences.ReturnTimeWindow)
	assert.Equal(t, domain.TimeWindow{Start: "12:00", End: "20:00"}, *intent.Preferences.ReturnTimeWindow)
}

func TestToDomainIntent_OptionalFieldsOmitted(t *testing.T) {
	intent := ToDomainIntent(&IntentRequest{
		Origins:       []string{"JFK"},
		Destinations:  []string{"LAX"},
		DepartureDate: "tomorrow",
	})

	assert.Equal(t, domain.Passengers{}, intent.Passengers)
	assert.Equal(t, domain.Preferences{}, intent.Preferences)
	assert.Nil(t, intent.StayDurationDays)
	assert.Nil(t, intent.DateFlexibilityDays)
	assert.Empty(t, intent.ReturnDateExpression)
}

func TestToSearchOptions(t *testing.T) {
	tests := []struct {
		sortBy string
		want   domain.SortOption
	}{
		{"", domain.SortByBestValue},
		{"best_value", domain.SortByBestValue},
		{"price", domain.SortByPrice},
		{"Duration", domain.SortByDuration},
		{"departure", domain.SortByDeparture},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			opts := ToSearchOptions(&SearchFlightsRequest{SortBy: tt.sortBy, Limit: 7})
			assert.Equal(t, tt.want, opts.SortBy)
			assert.Equal(t, 7, opts.Limit)
		})
	}
}

func TestToDomainTimeWindow_Incomplete(t *testing.T) {
	assert.Nil(t, toDomainTimeWindow(nil))
	assert.Nil(t, toDomainTimeWindow(&TimeRangeDTO{Start: "06:00"}))
}
