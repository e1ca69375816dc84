// Command planner expands travel intents into flight queries and manages the persisted caches.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/flight-search/flight-query-planner/internal/app"
	"github.com/flight-search/flight-query-planner/internal/cache"
	"github.com/flight-search/flight-query-planner/internal/config"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/logger"
)

var version = "dev"

// globalFlags are shared by every sub-command.
type globalFlags struct {
	dbPath       string
	airportsFile string
	flightsFile  string
	verbose      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "planner",
		Short:         "Flight query planner: expand travel intents into concrete flight queries",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.dbPath, "db", "", "path to the sqlite cache (default CACHE_DB_PATH)")
	root.PersistentFlags().StringVar(&g.airportsFile, "airports", "", "airport catalog file (default AIRPORTS_FILE)")
	root.PersistentFlags().StringVar(&g.flightsFile, "flights", "", "flight fixture file (default FLIGHTS_FILE)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(
		newPlanCmd(g),
		newSearchCmd(g),
		newCacheCmd(g),
		newAirportCmd(g),
	)
	return root
}

// session is an opened sqlite store with the caches registered over it.
type session struct {
	cfg    *config.Config
	caches *app.Caches
	log    zerolog.Logger
	close  func() error
}

// openSession loads configuration, applies flag overrides and opens the sqlite cache.
func openSession(g *globalFlags) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Cache.Backend = config.BackendSQLite
	if g.dbPath != "" {
		cfg.Cache.DBPath = g.dbPath
	}
	if g.airportsFile != "" {
		cfg.Data.AirportsFile = g.airportsFile
	}
	if g.flightsFile != "" {
		cfg.Data.FlightsFile = g.flightsFile
	}

	log := zerolog.Nop()
	if g.verbose {
		lc := cfg.LoggerConfig()
		lc.Format = "console"
		lc.Level = "debug"
		log = logger.NewWithOutput(lc, os.Stderr).Logger
	}

	store, closeStore, err := app.OpenStore(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("open cache store: %w", err)
	}

	return &session{
		cfg:    cfg,
		caches: app.NewCaches(cfg, store, cache.WithLogger(log)),
		log:    log,
		close:  closeStore,
	}, nil
}
