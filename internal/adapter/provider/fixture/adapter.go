// Package fixture provides flight providers that serve results from a JSON timetable file.
// Each provider in the file becomes one Adapter with its own simulated latency.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/flight-search/flight-query-planner/internal/domain"
)

// DefaultPath is the fixture file used when none is configured.
const DefaultPath = "data/flights.json"

// Adapter implements domain.FlightProvider over a fixed timetable.
type Adapter struct {
	name      string
	currency  string
	latency   time.Duration
	schedules []schedule
}

var _ domain.FlightProvider = (*Adapter)(nil)

// Load reads the fixture file at path and returns one Adapter per provider.
func Load(path string) ([]*Adapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture file: %w", err)
	}
	return Parse(data)
}

// Parse decodes fixture JSON into adapters.
func Parse(data []byte) ([]*Adapter, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture file: %w", err)
	}

	adapters := make([]*Adapter, 0, len(f.Providers))
	seen := make(map[string]bool, len(f.Providers))
	for _, p := range f.Providers {
		if p.Name == "" {
			return nil, fmt.Errorf("parse fixture file: provider without name")
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("parse fixture file: duplicate provider %s", p.Name)
		}
		seen[p.Name] = true

		adapters = append(adapters, &Adapter{
			name:      p.Name,
			currency:  p.Currency,
			latency:   time.Duration(p.LatencyMs) * time.Millisecond,
			schedules: p.Schedules,
		})
	}
	return adapters, nil
}

// Name returns the provider name.
func (a *Adapter) Name() string {
	return a.name
}

// SetLatency overrides the simulated response time.
func (a *Adapter) SetLatency(d time.Duration) {
	a.latency = d
}

// Search returns the flights matching the query after the simulated latency.
// A context that ends first yields a retryable timeout error.
func (a *Adapter) Search(ctx context.Context, query domain.FlightQuery) ([]domain.Flight, error) {
	if a.latency > 0 {
		timer := time.NewTimer(a.latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, domain.NewProviderTimeoutError(a.name)
		case <-timer.C:
		}
	} else if ctx.Err() != nil {
		return nil, domain.NewProviderTimeoutError(a.name)
	}

	flights, err := normalize(a.name, a.currency, a.schedules, query)
	if err != nil {
		return nil, domain.NewProviderError(a.name, err)
	}
	return flights, nil
}
