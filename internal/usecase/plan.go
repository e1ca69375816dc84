package usecase

import (
	"context"
	"errors"

	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
)

// Plan outcomes reported to the Recorder.
const (
	outcomeSuccess       = "success"
	outcomeInvalid       = "invalid"
	outcomeUnsatisfiable = "unsatisfiable"
	outcomeTooMany       = "too_many"
	outcomeFailed        = "failed"
)

// planKey identifies a plan. Relative date expressions resolve differently
// from one day to the next, so the calendar day is part of the key.
type planKey struct {
	Intent domain.SearchIntent `json:"intent"`
	Day    string              `json:"day"`
}

// Plan implements FlightSearchUseCase.Plan.
func (uc *flightSearchUseCase) Plan(ctx context.Context, intent domain.SearchIntent) (*domain.PlanResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if uc.locations != nil {
		intent.Origins = uc.locations.Expand(intent.Origins)
		intent.Destinations = uc.locations.Expand(intent.Destinations)
	}

	key := domain.HashJSON(planKey{
		Intent: intent,
		Day:    timeutil.FormatDate(timeutil.CalendarDate(uc.clock.Now(), uc.loc)),
	})

	if uc.queryCache != nil {
		if queries, ok := uc.queryCache.Get(key); ok {
			return &domain.PlanResponse{Queries: queries, Total: len(queries), CacheHit: true}, nil
		}
	}

	queries, err := uc.planner.Generate(intent)
	if err != nil {
		uc.recorder.RecordPlan(planOutcome(err), 0)
		uc.log.Debug().Err(err).Msg("Plan rejected")
		return nil, err
	}
	uc.recorder.RecordPlan(outcomeSuccess, len(queries))

	if uc.queryCache != nil {
		uc.queryCache.Set(key, queries)
	}

	return &domain.PlanResponse{Queries: queries, Total: len(queries)}, nil
}

func planOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoCombinations):
		return outcomeUnsatisfiable
	case errors.Is(err, domain.ErrTooManyCombinations):
		return outcomeTooMany
	case errors.Is(err, domain.ErrInvalidRequest):
		return outcomeInvalid
	default:
		return outcomeFailed
	}
}
