package usecase

import (
	"strings"

	"github.com/flight-search/flight-query-planner/internal/domain"
)

// ApplyPreferences returns the flights that satisfy every filtering preference.
// It returns the input unchanged when prefs is nil and never mutates it.
func ApplyPreferences(flights []domain.Flight, prefs *domain.Preferences) []domain.Flight {
	if prefs == nil {
		return flights
	}

	preferred := buildAirlineSet(prefs.PreferredAirlines)
	excluded := buildAirlineSet(prefs.ExcludedAirlines)

	result := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if passesAllPreferences(f, prefs, preferred, excluded) {
			result = append(result, f)
		}
	}
	return result
}

// passesAllPreferences mirrors domain.Preferences.MatchesFlight with the airline
// lists pre-indexed.
func passesAllPreferences(f domain.Flight, prefs *domain.Preferences, preferred, excluded map[string]struct{}) bool {
	if prefs.MaxPrice != nil && f.Price.Amount > *prefs.MaxPrice {
		return false
	}

	if prefs.MaxStops != nil && f.Stops > *prefs.MaxStops {
		return false
	}

	if len(preferred) > 0 && !isAirlineInSet(f.Airline.Code, preferred) {
		return false
	}

	if isAirlineInSet(f.Airline.Code, excluded) {
		return false
	}

	if !prefs.DepartureTimeWindow.Contains(f.Departure.DateTime) {
		return false
	}

	if f.Inbound != nil && !prefs.ReturnTimeWindow.Contains(f.Inbound.DateTime) {
		return false
	}

	return true
}

// buildAirlineSet creates a case-insensitive lookup set from airline codes.
func buildAirlineSet(airlines []string) map[string]struct{} {
	set := make(map[string]struct{}, len(airlines))
	for _, code := range airlines {
		set[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}
	return set
}

func isAirlineInSet(code string, set map[string]struct{}) bool {
	_, exists := set[strings.ToUpper(code)]
	return exists
}
