package http

import (
	"strings"

	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/usecase"
)

// ToDomainIntent converts an IntentRequest to a domain.SearchIntent.
// Codes are passed through as sent; the planner normalizes them.
func ToDomainIntent(req *IntentRequest) domain.SearchIntent {
	intent := domain.SearchIntent{
		Origins:                 req.Origins,
		Destinations:            req.Destinations,
		DepartureDateExpression: req.DepartureDate,
		ReturnDateExpression:    req.ReturnDate,
		StayDurationDays:        req.StayDurationDays,
		DateFlexibilityDays:     req.DateFlexibilityDays,
		CabinClass:              req.CabinClass,
		Preferences:             ToDomainPreferences(req.Preferences),
	}

	if req.Passengers != nil {
		intent.Passengers = domain.Passengers{
			Adults:   req.Passengers.Adults,
			Children: req.Passengers.Children,
			Infants:  req.Passengers.Infants,
		}
	}

	return intent
}

// ToDomainPreferences converts a PreferencesDTO to domain.Preferences.
func ToDomainPreferences(dto *PreferencesDTO) domain.Preferences {
	if dto == nil {
		return domain.Preferences{}
	}

	return domain.Preferences{
		MaxPrice:            dto.MaxPrice,
		MaxStops:            dto.MaxStops,
		PreferredAirlines:   normalizeAirlines(dto.PreferredAirlines),
		ExcludedAirlines:    normalizeAirlines(dto.ExcludedAirlines),
		CheckedBags:         dto.CheckedBags,
		SeatPreference:      strings.TrimSpace(dto.SeatPreference),
		DepartureTimeWindow: toDomainTimeWindow(dto.DepartureTimeRange),
		ReturnTimeWindow:    toDomainTimeWindow(dto.ReturnTimeRange),
	}
}

func normalizeAirlines(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	result := make([]string, len(codes))
	for i, code := range codes {
		result[i] = strings.ToUpper(strings.TrimSpace(code))
	}
	return result
}

// toDomainTimeWindow converts a TimeRangeDTO to domain.TimeWindow.
func toDomainTimeWindow(dto *TimeRangeDTO) *domain.TimeWindow {
	if dto == nil || dto.Start == "" || dto.End == "" {
		return nil
	}
	return &domain.TimeWindow{Start: dto.Start, End: dto.End}
}

// ToSearchOptions converts request fields to usecase.SearchOptions.
func ToSearchOptions(req *SearchFlightsRequest) usecase.SearchOptions {
	return usecase.SearchOptions{
		SortBy: domain.ParseSortOption(req.SortBy),
		Limit:  req.Limit,
	}
}
