// Package http provides the HTTP handler layer for the flight query planner API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flight-search/flight-query-planner/internal/domain"
)

// Request limits enforced before an intent reaches the planner.
const (
	MaxLocations = 10
	MaxLimit     = 200
)

// IntentRequest is the JSON body of the plan endpoint and the base of the search body.
// Example: {"origins": ["NYC"], "destinations": ["LAX"], "departureDate": "next-weekend", "returnDate": "one-way"}
type IntentRequest struct {
	// Origins are departure airport or metro codes (e.g., "JFK", "NYC")
	Origins []string `json:"origins" example:"JFK,NYC"`

	// Destinations are arrival airport or metro codes
	Destinations []string `json:"destinations" example:"LAX"`

	// DepartureDate is YYYY-MM-DD or a relative expression (today, tomorrow, next-weekend, ...)
	DepartureDate string `json:"departureDate" example:"next-weekend"`

	// ReturnDate uses the same grammar; empty or "one-way" means no return leg
	ReturnDate string `json:"returnDate,omitempty" example:"one-way"`

	// StayDurationDays derives the return date from each departure date
	StayDurationDays *int `json:"stayDurationDays,omitempty" example:"7"`

	// DateFlexibilityDays widens every date into a ± N day window (0-14)
	DateFlexibilityDays *int `json:"dateFlexibilityDays,omitempty" example:"1"`

	// Passengers holds the passenger counts (adults default to 1)
	Passengers *PassengersDTO `json:"passengers,omitempty"`

	// CabinClass is economy, premium_economy, business or first (optional)
	CabinClass string `json:"cabinClass,omitempty" example:"economy"`

	// Preferences are copied onto every query and used to filter search results
	Preferences *PreferencesDTO `json:"preferences,omitempty"`
}

// SearchFlightsRequest represents the request body for flight search.
type SearchFlightsRequest struct {
	IntentRequest

	// SortBy specifies how to sort results: best, price, duration, departure
	SortBy string `json:"sortBy,omitempty" example:"price"`

	// Limit caps the number of flights returned (0 = no limit)
	Limit int `json:"limit,omitempty" example:"20"`
}

// PassengersDTO holds passenger counts by age group.
type PassengersDTO struct {
	Adults   int `json:"adults" example:"2"`
	Children int `json:"children,omitempty" example:"1"`
	Infants  int `json:"infants,omitempty" example:"0"`
}

// PreferencesDTO represents optional travel preferences.
// Example: {"maxPrice": 450, "maxStops": 0, "departureTimeRange": {"start": "06:00", "end": "12:00"}}
type PreferencesDTO struct {
	// MaxPrice filters flights with price above this amount
	MaxPrice *float64 `json:"maxPrice,omitempty" example:"450"`

	// MaxStops filters flights with more stops than this value (0 = direct only)
	MaxStops *int `json:"maxStops,omitempty" example:"0"`

	// PreferredAirlines keeps only flights from these airline codes
	PreferredAirlines []string `json:"preferredAirlines,omitempty" example:"SK,CT"`

	// ExcludedAirlines drops flights from these airline codes
	ExcludedAirlines []string `json:"excludedAirlines,omitempty" example:"AP"`

	// CheckedBags is the number of checked bags needed
	CheckedBags *int `json:"checkedBags,omitempty" example:"1"`

	// SeatPreference is a free-form seat choice (aisle, window)
	SeatPreference string `json:"seatPreference,omitempty" example:"aisle"`

	// DepartureTimeRange filters outbound flights departing within a time window
	DepartureTimeRange *TimeRangeDTO `json:"departureTimeRange,omitempty"`

	// ReturnTimeRange filters round trips whose return leg departs within a time window
	ReturnTimeRange *TimeRangeDTO `json:"returnTimeRange,omitempty"`
}

// TimeRangeDTO represents a time window for filtering.
type TimeRangeDTO struct {
	// Start is the beginning of the time range (HH:MM format, e.g., "06:00")
	Start string `json:"start" example:"06:00"`

	// End is the end of the time range (HH:MM format, e.g., "12:00")
	End string `json:"end" example:"12:00"`
}

var locationCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// Valid sort options.
var validSortOptions = map[string]bool{
	"best":       true,
	"best_value": true,
	"price":      true,
	"duration":   true,
	"departure":  true,
	"":           true, // Empty is valid (defaults to best)
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
// The first message recorded for a field wins.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, exists := result[e.Field]; !exists {
			result[e.Field] = e.Message
		}
	}
	return result
}

// Validate checks the request shape and collects every problem found.
// Date expressions, passenger rules and combination limits are checked by the planner.
func (r *IntentRequest) Validate() error {
	errs := &ValidationErrors{}
	r.validate(errs)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *IntentRequest) validate(errs *ValidationErrors) {
	validateLocations(errs, "origins", r.Origins)
	validateLocations(errs, "destinations", r.Destinations)

	if strings.TrimSpace(r.DepartureDate) == "" {
		errs.Add("departureDate", "departureDate is required")
	}

	if r.Passengers != nil {
		if r.Passengers.Adults < 0 || r.Passengers.Children < 0 || r.Passengers.Infants < 0 {
			errs.Add("passengers", "passenger counts cannot be negative")
		}
	}

	r.validatePreferences(errs)
}

func validateLocations(errs *ValidationErrors, field string, codes []string) {
	if len(codes) == 0 {
		errs.Add(field, field+" is required")
		return
	}
	if len(codes) > MaxLocations {
		errs.Add(field, fmt.Sprintf("%s cannot list more than %d codes", field, MaxLocations))
		return
	}
	for i, code := range codes {
		if !locationCodePattern.MatchString(strings.TrimSpace(code)) {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), "code must be a 3-letter IATA airport or metro code")
		}
	}
}

func (r *IntentRequest) validatePreferences(errs *ValidationErrors) {
	p := r.Preferences
	if p == nil {
		return
	}

	if p.MaxPrice != nil && *p.MaxPrice < 0 {
		errs.Add("preferences.maxPrice", "maxPrice must be a positive number")
	}

	if p.MaxStops != nil && *p.MaxStops < 0 {
		errs.Add("preferences.maxStops", "maxStops must be a non-negative number")
	}

	if p.CheckedBags != nil && *p.CheckedBags < 0 {
		errs.Add("preferences.checkedBags", "checkedBags must be a non-negative number")
	}

	validateAirlines(errs, "preferences.preferredAirlines", p.PreferredAirlines)
	validateAirlines(errs, "preferences.excludedAirlines", p.ExcludedAirlines)

	validateTimeRange(errs, "preferences.departureTimeRange", p.DepartureTimeRange)
	validateTimeRange(errs, "preferences.returnTimeRange", p.ReturnTimeRange)
}

func validateAirlines(errs *ValidationErrors, field string, airlines []string) {
	for i, airline := range airlines {
		normalized := strings.TrimSpace(airline)
		if len(normalized) < 2 || len(normalized) > 3 {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), "airline code must be 2 or 3 characters")
		}
	}
}

func validateTimeRange(errs *ValidationErrors, field string, tr *TimeRangeDTO) {
	if tr == nil {
		return
	}

	if tr.Start == "" {
		errs.Add(field+".start", "start time is required when a time range is specified")
	} else if !domain.IsValidClock(tr.Start) {
		errs.Add(field+".start", "start must be in HH:MM format with valid hours (00-23) and minutes (00-59)")
	}

	if tr.End == "" {
		errs.Add(field+".end", "end time is required when a time range is specified")
	} else if !domain.IsValidClock(tr.End) {
		errs.Add(field+".end", "end must be in HH:MM format with valid hours (00-23) and minutes (00-59)")
	}

	if domain.IsValidClock(tr.Start) && domain.IsValidClock(tr.End) && tr.Start > tr.End {
		errs.Add(field, "start must not be after end")
	}
}

// Validate validates the search request and returns any validation errors.
func (r *SearchFlightsRequest) Validate() error {
	errs := &ValidationErrors{}
	r.IntentRequest.validate(errs)

	if !validSortOptions[strings.ToLower(r.SortBy)] {
		errs.Add("sortBy", "sortBy must be one of: best, price, duration, departure")
	}

	if r.Limit < 0 || r.Limit > MaxLimit {
		errs.Add("limit", fmt.Sprintf("limit must be between 0 and %d", MaxLimit))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
