package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/flight-search/flight-query-planner/internal/cache"
	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/logger"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/retry"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
)

// Default execution limits.
const (
	DefaultGlobalTimeout   = 5 * time.Second
	DefaultProviderTimeout = 2 * time.Second
	DefaultConcurrency     = 8
)

// Provider call statuses reported to the Recorder.
const (
	statusSuccess = "success"
	statusError   = "error"
	statusTimeout = "timeout"
	statusPanic   = "panic"
)

// FlightSearchUseCase defines the planning and search operations.
type FlightSearchUseCase interface {
	// Plan expands the intent into concrete queries without executing them.
	Plan(ctx context.Context, intent domain.SearchIntent) (*domain.PlanResponse, error)

	// Search plans the intent, executes every query against all providers
	// and returns the filtered, ranked and sorted results.
	Search(ctx context.Context, intent domain.SearchIntent, opts SearchOptions) (*domain.SearchResponse, error)
}

// Config contains configuration options for the use case.
type Config struct {
	// GlobalTimeout bounds a whole search
	GlobalTimeout time.Duration

	// ProviderTimeout bounds a single provider attempt
	ProviderTimeout time.Duration

	// Concurrency is the number of queries executed at once
	Concurrency int

	// Retry controls how retryable provider errors are retried
	Retry retry.Config
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		GlobalTimeout:   DefaultGlobalTimeout,
		ProviderTimeout: DefaultProviderTimeout,
		Concurrency:     DefaultConcurrency,
		Retry:           retry.ProviderConfig,
	}
}

// flightSearchUseCase implements FlightSearchUseCase.
type flightSearchUseCase struct {
	planner   Planner
	providers []domain.FlightProvider
	cfg       Config

	queryCache  *cache.Cache[[]domain.FlightQuery]
	flightCache *cache.Cache[[]domain.Flight]
	locations   LocationExpander
	recorder    Recorder
	clock       timeutil.Clock
	loc         *time.Location
	log         zerolog.Logger

	inflight singleflight.Group
}

// NewFlightSearchUseCase creates a FlightSearchUseCase over the given planner and providers.
// If config is nil, or a field is zero, default values are used.
func NewFlightSearchUseCase(planner Planner, providers []domain.FlightProvider, config *Config, opts ...Option) FlightSearchUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.GlobalTimeout > 0 {
			cfg.GlobalTimeout = config.GlobalTimeout
		}
		if config.ProviderTimeout > 0 {
			cfg.ProviderTimeout = config.ProviderTimeout
		}
		if config.Concurrency > 0 {
			cfg.Concurrency = config.Concurrency
		}
		if config.Retry.MaxAttempts > 0 {
			cfg.Retry = config.Retry
		}
	}
	cfg.Retry.RetryIf = isRetryableProviderError

	uc := &flightSearchUseCase{
		planner:   planner,
		providers: providers,
		cfg:       cfg,
		recorder:  nopRecorder{},
		clock:     timeutil.NewRealClock(),
		loc:       time.UTC,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// queryOutcome is the result of executing one query.
type queryOutcome struct {
	flights  []domain.Flight
	cacheHit bool
	queried  []string
	failed   []string
	err      error
}

// Search implements FlightSearchUseCase.Search.
func (uc *flightSearchUseCase) Search(ctx context.Context, intent domain.SearchIntent, opts SearchOptions) (*domain.SearchResponse, error) {
	startTime := time.Now()
	defer func() {
		uc.recorder.RecordSearch(time.Since(startTime))
	}()

	if err := intent.Preferences.Validate(); err != nil {
		return nil, err
	}

	plan, err := uc.Plan(ctx, intent)
	if err != nil {
		return nil, err
	}

	if len(uc.providers) == 0 {
		return nil, domain.ErrAllProvidersFailed
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.GlobalTimeout)
	defer cancel()

	outcomes := make([]queryOutcome, len(plan.Queries))

	var g errgroup.Group
	g.SetLimit(uc.cfg.Concurrency)
	for i, q := range plan.Queries {
		g.Go(func() error {
			outcomes[i] = uc.executeQuery(ctx, q)
			return nil
		})
	}
	_ = g.Wait()

	var allFlights []domain.Flight
	queried := make(map[string]struct{})
	failed := make(map[string]struct{})
	meta := domain.SearchMetadata{QueriesGenerated: len(plan.Queries)}
	succeeded := 0

	for _, o := range outcomes {
		if o.cacheHit {
			meta.CacheHits++
		} else {
			meta.QueriesExecuted++
		}
		for _, p := range o.queried {
			queried[p] = struct{}{}
		}
		for _, p := range o.failed {
			failed[p] = struct{}{}
		}
		if o.err != nil {
			continue
		}
		succeeded++
		allFlights = append(allFlights, o.flights...)
	}

	if succeeded == 0 {
		switch err := ctx.Err(); {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, fmt.Errorf("%w: search deadline exceeded", domain.ErrProviderTimeout)
		case errors.Is(err, context.Canceled):
			return nil, err
		}
		return nil, domain.ErrAllProvidersFailed
	}

	filtered := ApplyPreferences(allFlights, &intent.Preferences)
	ranked := CalculateRankingScores(filtered)
	sorted := SortFlights(ranked, opts.SortBy)
	if opts.Limit > 0 && len(sorted) > opts.Limit {
		sorted = sorted[:opts.Limit]
	}

	meta.ProvidersQueried = sortedKeys(queried)
	meta.ProvidersFailed = sortedKeys(failed)
	meta.SearchDurationMs = time.Since(startTime).Milliseconds()

	uc.log.Info().
		Str("request_id", logger.RequestIDFromContext(ctx)).
		Int("queries", meta.QueriesGenerated).
		Int("cacheHits", meta.CacheHits).
		Int("results", len(sorted)).
		Strs("providersFailed", meta.ProvidersFailed).
		Int64("durationMs", meta.SearchDurationMs).
		Msg("Search completed")

	return domain.NewSearchResponse(plan.Queries, sorted, meta), nil
}

// executeQuery answers one query from the flights cache or from the providers.
// Concurrent executions of the same query share one provider round. The round
// is detached from the caller that started it and bounded by GlobalTimeout, so
// one caller going away does not fail the others; each caller still stops
// waiting when its own context ends.
func (uc *flightSearchUseCase) executeQuery(ctx context.Context, q domain.FlightQuery) queryOutcome {
	key := q.Key()

	if uc.flightCache != nil {
		if flights, ok := uc.flightCache.Get(key); ok {
			return queryOutcome{flights: flights, cacheHit: true}
		}
	}

	ch := uc.inflight.DoChan(key, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.GlobalTimeout)
		defer cancel()

		o := uc.scatter(shared, q)
		if o.err == nil && uc.flightCache != nil {
			uc.flightCache.Set(key, o.flights)
		}
		return o, nil
	})

	select {
	case res := <-ch:
		return res.Val.(queryOutcome)
	case <-ctx.Done():
		return queryOutcome{err: ctx.Err()}
	}
}

// scatter sends q to every provider concurrently and gathers the answers.
// The query fails only when every provider fails.
func (uc *flightSearchUseCase) scatter(ctx context.Context, q domain.FlightQuery) queryOutcome {
	resultsChan := make(chan domain.ProviderResult, len(uc.providers))

	var wg sync.WaitGroup
	for _, provider := range uc.providers {
		wg.Add(1)
		go func(p domain.FlightProvider) {
			defer wg.Done()
			resultsChan <- uc.queryProvider(ctx, p, q)
		}(provider)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	o := queryOutcome{
		queried: make([]string, 0, len(uc.providers)),
	}
	key := q.Key()

	for result := range resultsChan {
		o.queried = append(o.queried, result.Provider)
		if !result.IsSuccess() {
			o.failed = append(o.failed, result.Provider)
			uc.log.Warn().
				Err(result.Error).
				Str("provider", result.Provider).
				Str("route", q.Route()).
				Str("departureDate", q.DepartureDate).
				Msg("Provider search failed")
			continue
		}
		for _, f := range result.Flights {
			if f.QueryKey == "" {
				f.QueryKey = key
			}
			o.flights = append(o.flights, f)
		}
	}

	if len(o.failed) == len(uc.providers) {
		o.err = domain.ErrAllProvidersFailed
	}
	return o
}

// queryProvider calls one provider with retries, a per-attempt timeout and panic recovery.
func (uc *flightSearchUseCase) queryProvider(ctx context.Context, provider domain.FlightProvider, q domain.FlightQuery) domain.ProviderResult {
	start := time.Now()
	name := provider.Name()

	flights, err := retry.Do(ctx, uc.cfg.Retry, func(ctx context.Context) ([]domain.Flight, error) {
		return uc.attempt(ctx, provider, q)
	})

	duration := time.Since(start)
	uc.recorder.RecordProviderCall(name, callStatus(err), duration)

	return domain.ProviderResult{
		Provider:   name,
		Flights:    flights,
		Error:      err,
		DurationMs: duration.Milliseconds(),
	}
}

// attempt performs a single provider call. A deadline hit during the call is reported
// as a retryable timeout and a panic as a permanent provider error.
func (uc *flightSearchUseCase) attempt(ctx context.Context, provider domain.FlightProvider, q domain.FlightQuery) (flights []domain.Flight, err error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.ProviderTimeout)
	defer cancel()

	name := provider.Name()
	defer func() {
		if r := recover(); r != nil {
			flights = nil
			err = retry.NewPermanent(domain.NewProviderError(name, fmt.Errorf("%w: %v", errProviderPanic, r)))
		}
	}()

	flights, err = provider.Search(ctx, q)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return nil, domain.NewProviderTimeoutError(name)
	}
	return flights, err
}

var errProviderPanic = errors.New("provider panic")

func isRetryableProviderError(err error) bool {
	if retry.IsPermanent(err) {
		return false
	}
	return domain.IsRetryable(err)
}

func callStatus(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, errProviderPanic):
		return statusPanic
	case domain.IsProviderTimeout(err):
		return statusTimeout
	default:
		return statusError
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Ensure flightSearchUseCase implements FlightSearchUseCase at compile time.
var _ FlightSearchUseCase = (*flightSearchUseCase)(nil)
