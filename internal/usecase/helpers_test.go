package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/retry"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-query-planner/internal/planner"
)

const testNow = "2025-12-01T09:00:00Z"

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

// createTestFlight creates a flight for testing with the given parameters.
func createTestFlight(id, provider string, price float64, durationMin int, stops int) domain.Flight {
	return domain.Flight{
		ID:           id,
		FlightNumber: "FL-" + id,
		Airline: domain.AirlineInfo{
			Code: "AA",
			Name: "Test Airline",
		},
		Departure: domain.FlightPoint{
			AirportCode: "JFK",
			DateTime:    time.Date(2025, 12, 15, 8, 0, 0, 0, time.UTC),
		},
		Arrival: domain.FlightPoint{
			AirportCode: "LAX",
			DateTime:    time.Date(2025, 12, 15, 8, 0, 0, 0, time.UTC).Add(time.Duration(durationMin) * time.Minute),
		},
		Duration: domain.NewDurationInfo(durationMin),
		Price: domain.PriceInfo{
			Amount:   price,
			Currency: "USD",
		},
		Class:    domain.CabinEconomy,
		Stops:    stops,
		Provider: provider,
	}
}

// createFlightAt creates a flight with a specific airline and departure hour.
func createFlightAt(id string, price float64, stops int, airlineCode string, departureHour int) domain.Flight {
	f := createTestFlight(id, "test", price, 120, stops)
	f.Airline.Code = airlineCode
	f.Departure.DateTime = time.Date(2025, 12, 15, departureHour, 0, 0, 0, time.UTC)
	f.Arrival.DateTime = f.Departure.DateTime.Add(2 * time.Hour)
	return f
}

func baseIntent() domain.SearchIntent {
	return domain.SearchIntent{
		Origins:                 []string{"JFK"},
		Destinations:            []string{"LAX"},
		DepartureDateExpression: "2025-12-15",
		Passengers:              domain.Passengers{Adults: 1},
	}
}

func newTestPlanner() *planner.Generator {
	return planner.New(planner.WithClock(timeutil.NewMockClockFromString(testNow)))
}

// singleAttempt disables retries so call counts are exact.
var singleAttempt = retry.Config{MaxAttempts: 1}

func newTestUseCase(providers []domain.FlightProvider, config *Config, opts ...Option) FlightSearchUseCase {
	if config == nil {
		config = &Config{Retry: singleAttempt}
	}
	opts = append([]Option{WithClock(timeutil.NewMockClockFromString(testNow))}, opts...)
	return NewFlightSearchUseCase(newTestPlanner(), providers, config, opts...)
}

// setupMockProvider creates a mock provider with standard behavior.
func setupMockProvider(ctrl *gomock.Controller, name string, flights []domain.Flight, err error) *domain.MockFlightProvider {
	mock := domain.NewMockFlightProvider(ctrl)
	mock.EXPECT().Name().Return(name).AnyTimes()
	mock.EXPECT().Search(gomock.Any(), gomock.Any()).Return(flights, err).AnyTimes()
	return mock
}

// setupMockProviderWithDelay creates a mock provider that simulates network delay.
func setupMockProviderWithDelay(ctrl *gomock.Controller, name string, flights []domain.Flight, delay time.Duration) *domain.MockFlightProvider {
	mock := domain.NewMockFlightProvider(ctrl)
	mock.EXPECT().Name().Return(name).AnyTimes()
	mock.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, query domain.FlightQuery) ([]domain.Flight, error) {
			select {
			case <-time.After(delay):
				return flights, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	).AnyTimes()
	return mock
}

// setupMockProviderWithPanic creates a mock provider that panics exactly once.
func setupMockProviderWithPanic(ctrl *gomock.Controller, name string, panicMsg string) *domain.MockFlightProvider {
	mock := domain.NewMockFlightProvider(ctrl)
	mock.EXPECT().Name().Return(name).AnyTimes()
	mock.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, query domain.FlightQuery) ([]domain.Flight, error) {
			panic(panicMsg)
		},
	).Times(1)
	return mock
}

// fakeRecorder captures Recorder calls.
type fakeRecorder struct {
	mu       sync.Mutex
	plans    []string
	statuses map[string][]string
	searches int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{statuses: make(map[string][]string)}
}

func (r *fakeRecorder) RecordPlan(outcome string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append(r.plans, outcome)
}

func (r *fakeRecorder) RecordProviderCall(provider, status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[provider] = append(r.statuses[provider], status)
}

func (r *fakeRecorder) RecordSearch(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches++
}

// metroExpander expands NYC for tests.
type metroExpander struct{}

func (metroExpander) Expand(codes []string) []string {
	result := make([]string, 0, len(codes))
	for _, c := range codes {
		if c == "NYC" {
			result = append(result, "JFK", "LGA")
			continue
		}
		result = append(result, c)
	}
	return result
}

// countingPlanner wraps a planner and counts Generate calls.
type countingPlanner struct {
	mu    sync.Mutex
	inner Planner
	calls int
}

func (p *countingPlanner) Generate(intent domain.SearchIntent) ([]domain.FlightQuery, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return p.inner.Generate(intent)
}
