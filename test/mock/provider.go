// Package mock provides test doubles for the flight query planner.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flight-search/flight-query-planner/internal/domain"
)

// Provider is a configurable mock implementation of domain.FlightProvider.
// It supports configurable delays, errors, and responses for testing
// various scenarios including timeouts and partial failures.
type Provider struct {
	name    string
	flights []domain.Flight
	err     error
	delay   time.Duration
	queries []domain.FlightQuery
	mu      sync.Mutex
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{name: name}
}

// WithFlights configures the provider to return the given flights.
func (p *Provider) WithFlights(flights []domain.Flight) *Provider {
	p.flights = flights
	return p
}

// WithError configures the provider to return the given error.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait the given duration before responding.
// This is useful for testing timeout behavior.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name returns the provider's unique identifier.
func (p *Provider) Name() string {
	return p.name
}

// Search implements domain.FlightProvider.Search.
// Returned flights are re-dated onto the query's route and departure date.
func (p *Provider) Search(ctx context.Context, query domain.FlightQuery) ([]domain.Flight, error) {
	p.mu.Lock()
	p.queries = append(p.queries, query)
	p.mu.Unlock()

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, domain.NewProviderTimeoutError(p.name)
		case <-timer.C:
		}
	}

	if ctx.Err() != nil {
		return nil, domain.NewProviderTimeoutError(p.name)
	}

	if p.err != nil {
		return nil, p.err
	}

	return onQuery(p.flights, query), nil
}

// CallCount returns the number of times Search was called.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queries)
}

// Queries returns a copy of every query the provider received.
func (p *Provider) Queries() []domain.FlightQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.FlightQuery(nil), p.queries...)
}

// Reset forgets the recorded calls.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = nil
}

// Ensure Provider implements domain.FlightProvider at compile time.
var _ domain.FlightProvider = (*Provider)(nil)

// onQuery moves flights onto the route and date of q, keeping their time of day.
func onQuery(flights []domain.Flight, q domain.FlightQuery) []domain.Flight {
	date, err := time.Parse("2006-01-02", q.DepartureDate)
	if err != nil {
		return flights
	}

	result := make([]domain.Flight, len(flights))
	for i, f := range flights {
		dep := f.Departure.DateTime
		shifted := time.Date(date.Year(), date.Month(), date.Day(), dep.Hour(), dep.Minute(), 0, 0, time.UTC)
		f.ID = fmt.Sprintf("%s-%s-%s", f.ID, q.Route(), q.DepartureDate)
		f.Departure = domain.FlightPoint{AirportCode: q.Origin, DateTime: shifted}
		f.Arrival = domain.FlightPoint{AirportCode: q.Destination, DateTime: shifted.Add(f.Arrival.DateTime.Sub(dep))}
		result[i] = f
	}
	return result
}

// SampleFlights returns a slice of sample flights for testing.
// Departures are two hours apart and prices rise by 25 per flight.
func SampleFlights(provider string, count int) []domain.Flight {
	flights := make([]domain.Flight, count)

	baseTime := time.Date(2030, 3, 14, 8, 0, 0, 0, time.UTC)
	code, name := airlineFor(provider)

	for i := 0; i < count; i++ {
		departureTime := baseTime.Add(time.Duration(i*2) * time.Hour)

		flights[i] = domain.Flight{
			ID:           fmt.Sprintf("%s-%d", provider, i+1),
			FlightNumber: fmt.Sprintf("%s%d", code, 100+i),
			Airline:      domain.AirlineInfo{Code: code, Name: name},
			Departure:    domain.FlightPoint{AirportCode: "JFK", DateTime: departureTime},
			Arrival:      domain.FlightPoint{AirportCode: "LAX", DateTime: departureTime.Add(6 * time.Hour)},
			Duration:     domain.NewDurationInfo(360),
			Price:        domain.PriceInfo{Amount: 250 + float64(i*25), Currency: "USD"},
			Class:        domain.CabinEconomy,
			Stops:        i % 2,
			Provider:     provider,
		}
	}

	return flights
}

// airlineFor maps provider names to airline codes and names.
func airlineFor(provider string) (string, string) {
	switch provider {
	case "skyline":
		return "SK", "Skyline Air"
	case "continental":
		return "CT", "Continental Way"
	case "archipelago":
		return "AP", "Archipelago Airways"
	default:
		return "XX", "Unknown Airline"
	}
}
