package domain

import "strings"

// SortOption defines the available sorting options for flight results.
type SortOption string

// Available sort options.
const (
	// SortByBestValue sorts by the calculated ranking score (default)
	SortByBestValue SortOption = "best"

	// SortByPrice sorts by price ascending (cheapest first)
	SortByPrice SortOption = "price"

	// SortByDuration sorts by flight duration ascending (shortest first)
	SortByDuration SortOption = "duration"

	// SortByDeparture sorts by departure time ascending (earliest first)
	SortByDeparture SortOption = "departure"
)

// IsValid checks if the sort option is a valid value.
func (s SortOption) IsValid() bool {
	switch s {
	case SortByBestValue, SortByPrice, SortByDuration, SortByDeparture:
		return true
	default:
		return false
	}
}

// ParseSortOption converts a string to a SortOption.
// Returns SortByBestValue if the string is empty or invalid.
func ParseSortOption(s string) SortOption {
	option := SortOption(strings.ToLower(s))
	if option == "best_value" {
		return SortByBestValue
	}
	if option.IsValid() {
		return option
	}
	return SortByBestValue
}

// Validate checks the preference values that the search flow acts on.
func (p *Preferences) Validate() error {
	if p == nil {
		return nil
	}
	if p.MaxPrice != nil && *p.MaxPrice < 0 {
		return NewValidationError("preferences.maxPrice", "maxPrice cannot be negative")
	}
	if p.MaxStops != nil && *p.MaxStops < 0 {
		return NewValidationError("preferences.maxStops", "maxStops cannot be negative")
	}
	if p.CheckedBags != nil && *p.CheckedBags < 0 {
		return NewValidationError("preferences.checkedBags", "checkedBags cannot be negative")
	}
	if err := validateWindow("preferences.departureTimeWindow", p.DepartureTimeWindow); err != nil {
		return err
	}
	return validateWindow("preferences.returnTimeWindow", p.ReturnTimeWindow)
}

func validateWindow(field string, w *TimeWindow) error {
	if w == nil {
		return nil
	}
	if !IsValidClock(w.Start) || !IsValidClock(w.End) {
		return NewValidationError(field, "start and end must be in HH:MM format")
	}
	if clockMinutes(w.Start) > clockMinutes(w.End) {
		return NewValidationError(field, "start must not be after end")
	}
	return nil
}

// MatchesFlight checks if a flight satisfies every preference that filters results.
// CheckedBags and SeatPreference are informational and never exclude a flight.
func (p *Preferences) MatchesFlight(f Flight) bool {
	if p == nil {
		return true
	}

	if p.MaxPrice != nil && f.Price.Amount > *p.MaxPrice {
		return false
	}

	if p.MaxStops != nil && f.Stops > *p.MaxStops {
		return false
	}

	if len(p.PreferredAirlines) > 0 && !containsFold(p.PreferredAirlines, f.Airline.Code) {
		return false
	}

	if containsFold(p.ExcludedAirlines, f.Airline.Code) {
		return false
	}

	if !p.DepartureTimeWindow.Contains(f.Departure.DateTime) {
		return false
	}

	if f.Inbound != nil && !p.ReturnTimeWindow.Contains(f.Inbound.DateTime) {
		return false
	}

	return true
}

func containsFold(codes []string, code string) bool {
	for _, c := range codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}
