// Package domain contains the core entities and rules of the flight query planner.
// These types are provider-agnostic and shared by the planner, cache, search flow and adapters.
package domain

import (
	"strconv"
	"time"
)

// Flight represents a single flight offering returned for a FlightQuery.
type Flight struct {
	// ID is a unique identifier for this flight result
	ID string `json:"id"`

	// FlightNumber is the airline's flight number (e.g., "AA-100")
	FlightNumber string `json:"flightNumber"`

	// Airline contains information about the operating airline
	Airline AirlineInfo `json:"airline"`

	// Departure contains departure airport and time information
	Departure FlightPoint `json:"departure"`

	// Arrival contains arrival airport and time information
	Arrival FlightPoint `json:"arrival"`

	// Inbound is the departure of the return leg for round trips
	Inbound *FlightPoint `json:"inbound,omitempty"`

	// Duration contains the total flight duration
	Duration DurationInfo `json:"duration"`

	// Price contains pricing information for the whole party
	Price PriceInfo `json:"price"`

	// Class is the cabin class of the fare
	Class CabinClass `json:"class"`

	// Stops is the number of stops (0 = direct flight)
	Stops int `json:"stops"`

	// Provider identifies which flight provider this result came from
	Provider string `json:"provider"`

	// QueryKey links the flight back to the query that produced it
	QueryKey string `json:"queryKey,omitempty"`

	// RankingScore is the best-value score; lower is better
	RankingScore float64 `json:"rankingScore"`
}

// AirlineInfo contains information about an airline.
type AirlineInfo struct {
	// Code is the IATA airline code (e.g., "AA")
	Code string `json:"code"`

	// Name is the full airline name
	Name string `json:"name"`
}

// FlightPoint represents a departure or arrival point.
type FlightPoint struct {
	AirportCode string    `json:"airportCode"`
	DateTime    time.Time `json:"dateTime"`
}

// DurationInfo contains flight duration information.
type DurationInfo struct {
	// TotalMinutes is the total flight duration in minutes
	TotalMinutes int `json:"totalMinutes"`

	// Formatted is a human-readable duration string (e.g., "2h 30m")
	Formatted string `json:"formatted"`
}

// PriceInfo contains pricing information for a flight.
type PriceInfo struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// NewDurationInfo creates a DurationInfo from total minutes and formats it.
func NewDurationInfo(totalMinutes int) DurationInfo {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	var formatted string
	switch {
	case hours > 0 && mins > 0:
		formatted = strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
	case hours > 0:
		formatted = strconv.Itoa(hours) + "h"
	default:
		formatted = strconv.Itoa(mins) + "m"
	}

	return DurationInfo{
		TotalMinutes: totalMinutes,
		Formatted:    formatted,
	}
}
