// Package app wires the stores, caches and services shared by the server and the CLI.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/flight-search/flight-query-planner/internal/adapter/airport"
	"github.com/flight-search/flight-query-planner/internal/adapter/provider/fixture"
	"github.com/flight-search/flight-query-planner/internal/cache"
	"github.com/flight-search/flight-query-planner/internal/cache/memstore"
	"github.com/flight-search/flight-query-planner/internal/cache/sqlitestore"
	"github.com/flight-search/flight-query-planner/internal/config"
	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-query-planner/internal/planner"
	"github.com/flight-search/flight-query-planner/internal/usecase"
)

// Cache instance names.
const (
	CacheFlights  = "flights"
	CacheQueries  = "queries"
	CacheAirports = "airports"
)

// Caches holds the named cache instances of a process.
type Caches struct {
	Flights  *cache.Cache[[]domain.Flight]
	Queries  *cache.Cache[[]domain.FlightQuery]
	Airports *cache.Cache[domain.Airport]

	Registry *cache.Registry
}

// OpenStore opens the persistent store selected by the cache configuration.
// The returned close function releases it and is never nil.
func OpenStore(cfg config.CacheConfig) (cache.Store, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create cache directory: %w", err)
			}
		}
		store, err := sqlitestore.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		var opts []memstore.Option
		if cfg.QuotaBytes > 0 {
			opts = append(opts, memstore.WithQuota(cfg.QuotaBytes))
		}
		return memstore.New(opts...), func() error { return nil }, nil
	}
}

// NewCaches creates the flights, queries and airports caches over store and registers them.
func NewCaches(cfg *config.Config, store cache.Store, opts ...cache.Option) *Caches {
	c := &Caches{
		Flights:  cache.New[[]domain.Flight](store, cfg.CacheInstance(CacheFlights, cfg.Cache.Flights), opts...),
		Queries:  cache.New[[]domain.FlightQuery](store, cfg.CacheInstance(CacheQueries, cfg.Cache.Queries), opts...),
		Airports: cache.New[domain.Airport](store, cfg.CacheInstance(CacheAirports, cfg.Cache.Airports), opts...),
		Registry: cache.NewRegistry(),
	}
	c.Registry.Register(c.Flights)
	c.Registry.Register(c.Queries)
	c.Registry.Register(c.Airports)
	return c
}

// Services is the assembled search stack.
type Services struct {
	Catalog   *airport.Catalog
	Providers []domain.FlightProvider
	Planner   *planner.Generator
	UseCase   usecase.FlightSearchUseCase
}

// Build loads reference data and assembles the planner and search use case.
func Build(cfg *config.Config, caches *Caches, log zerolog.Logger, opts ...usecase.Option) (*Services, error) {
	catalog, err := airport.Load(cfg.Data.AirportsFile,
		airport.WithCache(caches.Airports),
		airport.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}

	adapters, err := fixture.Load(cfg.Data.FlightsFile)
	if err != nil {
		return nil, fmt.Errorf("load flights: %w", err)
	}
	providers := make([]domain.FlightProvider, 0, len(adapters))
	for _, a := range adapters {
		providers = append(providers, a)
	}

	gen := planner.New(append(cfg.PlannerOptions(), planner.WithLogger(log))...)

	ucOpts := append([]usecase.Option{
		usecase.WithQueryCache(caches.Queries),
		usecase.WithFlightCache(caches.Flights),
		usecase.WithLocations(catalog),
		usecase.WithLocation(timeutil.MustGetLocation(cfg.Planner.Timezone)),
		usecase.WithLogger(log),
	}, opts...)

	return &Services{
		Catalog:   catalog,
		Providers: providers,
		Planner:   gen,
		UseCase:   usecase.NewFlightSearchUseCase(gen, providers, cfg.UseCaseConfig(), ucOpts...),
	}, nil
}
