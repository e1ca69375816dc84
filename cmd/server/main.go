// Package main is the entry point for the flight query planner service.
//
//	@title						Flight Query Planner API
//	@version					1.0.0
//	@description				Expands flexible travel intents into concrete flight queries and searches them across providers.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/flight-query-planner/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flight-search/flight-query-planner/docs"

	// Application layers
	flighthttp "github.com/flight-search/flight-query-planner/internal/adapter/http"
	"github.com/flight-search/flight-query-planner/internal/adapter/http/middleware"
	"github.com/flight-search/flight-query-planner/internal/app"
	"github.com/flight-search/flight-query-planner/internal/cache"
	"github.com/flight-search/flight-query-planner/internal/config"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/logger"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/metrics"
	"github.com/flight-search/flight-query-planner/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	log := logger.New(cfg.LoggerConfig()).Logger

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("Configuration loaded")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	store, closeStore, err := app.OpenStore(cfg.Cache)
	if err != nil {
		return fmt.Errorf("open cache store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error().Err(err).Msg("Error closing cache store")
		}
	}()

	cacheOpts := []cache.Option{cache.WithLogger(log)}
	var ucOpts []usecase.Option
	mwConfig := middleware.Config{Recovery: middleware.DefaultRecoveryConfig()}
	handlers := flighthttp.Handlers{}

	if cfg.Metrics.Enabled {
		m := metrics.New(cfg.Metrics.Namespace)
		cacheOpts = append(cacheOpts, cache.WithObserver(m))
		ucOpts = append(ucOpts, usecase.WithRecorder(m))
		mwConfig.Metrics = m
		handlers.Metrics = m.Handler()
	}

	caches := app.NewCaches(cfg, store, cacheOpts...)
	svc, err := app.Build(cfg, caches, log, ucOpts...)
	if err != nil {
		return err
	}

	log.Info().
		Int("airports", svc.Catalog.Len()).
		Int("providers", len(svc.Providers)).
		Msg("Reference data loaded")

	handlers.Flights = flighthttp.NewFlightHandler(svc.UseCase)
	handlers.Caches = flighthttp.NewCacheHandler(caches.Registry)
	handlers.Airports = flighthttp.NewAirportHandler(svc.Catalog)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.SetupWithConfig(e, log, mwConfig)
	flighthttp.RegisterRoutes(e, handlers)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return gracefulShutdown(e, log, errCh)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log zerolog.Logger, errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
	return nil
}
