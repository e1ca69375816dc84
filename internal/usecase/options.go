// Package usecase contains the query planning and flight search flows.
// Search expands an intent through the planner, answers each query from the flights
// cache or from every provider using the Scatter-Gather pattern, then filters,
// ranks and sorts the combined results.
package usecase

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/flight-search/flight-query-planner/internal/cache"
	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
)

// SearchOptions contains optional parameters for a flight search.
type SearchOptions struct {
	// SortBy specifies how to sort the results (default: best value)
	SortBy domain.SortOption

	// Limit caps the number of flights returned; 0 means no limit
	Limit int
}

// DefaultSearchOptions returns SearchOptions with sensible defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		SortBy: domain.SortByBestValue,
	}
}

// Planner expands an intent into concrete queries.
type Planner interface {
	Generate(intent domain.SearchIntent) ([]domain.FlightQuery, error)
}

// LocationExpander replaces metro codes with their airports.
type LocationExpander interface {
	Expand(codes []string) []string
}

// Recorder receives search flow measurements.
type Recorder interface {
	RecordPlan(outcome string, queries int)
	RecordProviderCall(provider, status string, duration time.Duration)
	RecordSearch(duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordPlan(string, int)                           {}
func (nopRecorder) RecordProviderCall(string, string, time.Duration) {}
func (nopRecorder) RecordSearch(time.Duration)                       {}

// Option configures the use case.
type Option func(*flightSearchUseCase)

// WithQueryCache caches plans keyed by intent and calendar day.
func WithQueryCache(c *cache.Cache[[]domain.FlightQuery]) Option {
	return func(uc *flightSearchUseCase) {
		uc.queryCache = c
	}
}

// WithFlightCache caches provider results keyed by query.
func WithFlightCache(c *cache.Cache[[]domain.Flight]) Option {
	return func(uc *flightSearchUseCase) {
		uc.flightCache = c
	}
}

// WithLocations expands metro codes in origins and destinations before planning.
func WithLocations(e LocationExpander) Option {
	return func(uc *flightSearchUseCase) {
		uc.locations = e
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(uc *flightSearchUseCase) {
		if r != nil {
			uc.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(uc *flightSearchUseCase) {
		uc.log = l
	}
}

// WithLocation sets the timezone whose midnight starts a new plan cache day.
// It should match the planner's location.
func WithLocation(loc *time.Location) Option {
	return func(uc *flightSearchUseCase) {
		if loc != nil {
			uc.loc = loc
		}
	}
}

// WithClock sets the clock that decides the calendar day in plan cache keys.
func WithClock(c timeutil.Clock) Option {
	return func(uc *flightSearchUseCase) {
		if c != nil {
			uc.clock = c
		}
	}
}
