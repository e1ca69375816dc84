package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-query-planner/internal/cache"
	"github.com/flight-search/flight-query-planner/internal/cache/memstore"
	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-query-planner/internal/planner"
)

func newQueryCache(clock timeutil.Clock) *cache.Cache[[]domain.FlightQuery] {
	return cache.New[[]domain.FlightQuery](memstore.New(), cache.DefaultConfig("queries"), cache.WithClock(clock))
}

func TestPlan_GeneratesQueries(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	intent := baseIntent()
	intent.ReturnDateExpression = "2025-12-20"

	plan, err := uc.Plan(context.Background(), intent)

	require.NoError(t, err)
	require.Len(t, plan.Queries, 1)
	assert.Equal(t, 1, plan.Total)
	assert.False(t, plan.CacheHit)
	assert.Equal(t, "2025-12-15", plan.Queries[0].DepartureDate)
	assert.Equal(t, "2025-12-20", plan.Queries[0].ReturnDate)
}

func TestPlan_CachesByIntentAndDay(t *testing.T) {
	clock := timeutil.NewMockClockFromString(testNow)
	queries := newQueryCache(clock)
	counting := &countingPlanner{inner: newTestPlanner()}

	uc := NewFlightSearchUseCase(counting, nil, nil, WithQueryCache(queries), WithClock(clock))

	first, err := uc.Plan(context.Background(), baseIntent())
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := uc.Plan(context.Background(), baseIntent())
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Queries, second.Queries)
	assert.Equal(t, 1, counting.calls)

	other := baseIntent()
	other.Destinations = []string{"SFO"}
	_, err = uc.Plan(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, 2, counting.calls, "a different intent must not hit the cache")

	clock.AdvanceDays(1)
	third, err := uc.Plan(context.Background(), baseIntent())
	require.NoError(t, err)
	assert.False(t, third.CacheHit, "a new calendar day must not reuse yesterday's plan")
	assert.Equal(t, 3, counting.calls)
}

func TestPlan_CacheDayFollowsPlannerLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 23:00 local on 2025-12-15.
	clock := timeutil.NewMockClockFromString("2025-12-15T16:00:00Z")
	gen := planner.New(planner.WithClock(clock), planner.WithLocation(jakarta))

	uc := NewFlightSearchUseCase(gen, nil, nil,
		WithQueryCache(newQueryCache(clock)),
		WithClock(clock),
		WithLocation(jakarta),
	)

	intent := baseIntent()
	intent.DepartureDateExpression = "tomorrow"

	before, err := uc.Plan(context.Background(), intent)
	require.NoError(t, err)
	require.Len(t, before.Queries, 1)
	assert.Equal(t, "2025-12-16", before.Queries[0].DepartureDate)

	// 01:00 local on 2025-12-16, still 2025-12-15 in UTC.
	clock.AdvanceHours(2)
	after, err := uc.Plan(context.Background(), intent)
	require.NoError(t, err)
	require.Len(t, after.Queries, 1)
	assert.False(t, after.CacheHit)
	assert.Equal(t, "2025-12-17", after.Queries[0].DepartureDate)
}

func TestPlan_ExpandsMetroCodes(t *testing.T) {
	uc := newTestUseCase(nil, nil, WithLocations(metroExpander{}))

	intent := baseIntent()
	intent.Origins = []string{"NYC"}

	plan, err := uc.Plan(context.Background(), intent)

	require.NoError(t, err)
	require.Len(t, plan.Queries, 2)
	assert.Equal(t, "JFK", plan.Queries[0].Origin)
	assert.Equal(t, "LGA", plan.Queries[1].Origin)
}

func TestPlan_ExpansionDoesNotMutateIntent(t *testing.T) {
	uc := newTestUseCase(nil, nil, WithLocations(metroExpander{}))

	intent := baseIntent()
	intent.Origins = []string{"NYC"}

	_, err := uc.Plan(context.Background(), intent)

	require.NoError(t, err)
	assert.Equal(t, []string{"NYC"}, intent.Origins)
}

func TestPlan_RecordsOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.SearchIntent)
		outcome string
		wantErr error
	}{
		{
			name:    "success",
			mutate:  func(*domain.SearchIntent) {},
			outcome: outcomeSuccess,
		},
		{
			name:    "invalid",
			mutate:  func(i *domain.SearchIntent) { i.Origins = nil },
			outcome: outcomeInvalid,
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "unsatisfiable",
			mutate:  func(i *domain.SearchIntent) { i.Destinations = []string{"JFK"} },
			outcome: outcomeUnsatisfiable,
			wantErr: domain.ErrNoCombinations,
		},
		{
			name: "too many",
			mutate: func(i *domain.SearchIntent) {
				i.DepartureDateExpression = "next-month"
				i.ReturnDateExpression = "next-month"
				i.Origins = []string{"JFK", "EWR", "LGA"}
				i.Destinations = []string{"LAX", "SFO", "SEA"}
			},
			outcome: outcomeTooMany,
			wantErr: domain.ErrTooManyCombinations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := newFakeRecorder()
			uc := newTestUseCase(nil, nil, WithRecorder(recorder))

			intent := baseIntent()
			tt.mutate(&intent)

			_, err := uc.Plan(context.Background(), intent)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, []string{tt.outcome}, recorder.plans)
		})
	}
}

func TestPlan_ContextCancelled(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Plan(ctx, baseIntent())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanOutcome(t *testing.T) {
	assert.Equal(t, outcomeFailed, planOutcome(errors.New("boom")))
	assert.Equal(t, outcomeFailed, planOutcome(&domain.ValidationError{Err: domain.ErrGenerationFailed}))
	assert.Equal(t, outcomeInvalid, planOutcome(domain.NewValidationError("origins", "required")))
}
