package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SearchIntent is a loosely specified search request before expansion into concrete queries.
type SearchIntent struct {
	// Origins are the departure airport or metro codes (e.g., "JFK", "NYC")
	Origins []string `json:"origins"`

	// Destinations are the arrival airport or metro codes
	Destinations []string `json:"destinations"`

	// DepartureDateExpression is an ISO date (YYYY-MM-DD) or a relative expression ("next-weekend")
	DepartureDateExpression string `json:"departureDate"`

	// ReturnDateExpression uses the same grammar; empty or "one-way" means no return leg
	ReturnDateExpression string `json:"returnDate,omitempty"`

	// StayDurationDays derives the return date as departure + N days when set
	StayDurationDays *int `json:"stayDurationDays,omitempty"`

	// DateFlexibilityDays widens every resolved date into a window of ± N days
	DateFlexibilityDays *int `json:"dateFlexibilityDays,omitempty"`

	// Passengers holds the passenger counts (adults default to 1)
	Passengers Passengers `json:"passengers"`

	// CabinClass is economy, premium_economy, business or first (default: economy)
	CabinClass string `json:"cabinClass,omitempty"`

	// Preferences are carried onto every generated query unchanged
	Preferences Preferences `json:"preferences"`
}

// Passengers holds passenger counts by age group.
type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// MaxPassengers is the largest party a single query may carry.
const MaxPassengers = 9

// WithDefaults returns a copy with adults defaulted to 1 when unset.
func (p Passengers) WithDefaults() Passengers {
	if p.Adults == 0 {
		p.Adults = 1
	}
	return p
}

// Total returns the number of travellers.
func (p Passengers) Total() int {
	return p.Adults + p.Children + p.Infants
}

// Validate checks passenger counts after defaults have been applied.
func (p Passengers) Validate() error {
	if p.Adults < 1 {
		return NewValidationError("passengers.adults", "adults must be at least 1")
	}
	if p.Children < 0 {
		return NewValidationError("passengers.children", "children cannot be negative")
	}
	if p.Infants < 0 {
		return NewValidationError("passengers.infants", "infants cannot be negative")
	}
	if p.Infants > p.Adults {
		return NewValidationError("passengers.infants", "each infant must travel with an adult")
	}
	if p.Total() > MaxPassengers {
		return NewValidationError("passengers", fmt.Sprintf("passengers cannot exceed %d", MaxPassengers))
	}
	return nil
}

// CabinClass is a normalized travel class.
type CabinClass string

// Available cabin classes.
const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// ParseCabinClass normalizes s to a CabinClass.
// Matching is case-insensitive, "-" and spaces are accepted as separators and empty means economy.
func ParseCabinClass(s string) (CabinClass, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	switch CabinClass(normalized) {
	case "":
		return CabinEconomy, nil
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return CabinClass(normalized), nil
	default:
		return "", NewInvalidValueError("cabinClass", s,
			"cabinClass must be one of: economy, premium_economy, business, first")
	}
}

// Preferences are soft search preferences. The planner copies them onto every query;
// the search flow uses them to filter results.
type Preferences struct {
	// MaxPrice filters out flights priced above this amount
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// MaxStops filters out flights with more stops (0 = direct only)
	MaxStops *int `json:"maxStops,omitempty"`

	// PreferredAirlines keeps only flights operated by these airline codes
	PreferredAirlines []string `json:"preferredAirlines,omitempty"`

	// ExcludedAirlines drops flights operated by these airline codes
	ExcludedAirlines []string `json:"excludedAirlines,omitempty"`

	// CheckedBags is the number of checked bags the traveller needs
	CheckedBags *int `json:"checkedBags,omitempty"`

	// SeatPreference is a free-form seat choice (aisle, window)
	SeatPreference string `json:"seatPreference,omitempty"`

	// DepartureTimeWindow restricts outbound departure time of day
	DepartureTimeWindow *TimeWindow `json:"departureTimeWindow,omitempty"`

	// ReturnTimeWindow restricts return departure time of day
	ReturnTimeWindow *TimeWindow `json:"returnTimeWindow,omitempty"`
}

// TimeWindow is a time-of-day range in HH:MM, inclusive on both ends.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsValidClock reports whether s is a valid HH:MM time of day.
func IsValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// clockMinutes converts a valid HH:MM string to minutes after midnight.
func clockMinutes(s string) int {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// Contains reports whether the time of day of t falls in the window.
// A nil window or one with an unparseable bound contains everything.
func (w *TimeWindow) Contains(t time.Time) bool {
	if w == nil {
		return true
	}
	start, end := clockMinutes(w.Start), clockMinutes(w.End)
	if start < 0 || end < 0 {
		return true
	}
	m := t.Hour()*60 + t.Minute()
	return m >= start && m <= end
}

var locationCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeLocationCodes trims, upper-cases and deduplicates codes, preserving first occurrence.
// It fails when the list is empty or any code is not a 3-letter airport or metro code.
func NormalizeLocationCodes(field string, codes []string) ([]string, error) {
	result := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))

	for _, raw := range codes {
		code := strings.ToUpper(strings.TrimSpace(raw))
		if code == "" {
			continue
		}
		if !locationCodePattern.MatchString(code) {
			return nil, NewInvalidValueError(field, raw, "must be a 3-letter airport or metro code")
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		result = append(result, code)
	}

	if len(result) == 0 {
		return nil, NewValidationError(field, field+" is required")
	}
	return result, nil
}
