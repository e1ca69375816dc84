// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-search/flight-query-planner/internal/cache"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/logger"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/retry"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-query-planner/internal/planner"
	"github.com/flight-search/flight-query-planner/internal/usecase"
)

// Cache backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Timeouts TimeoutConfig
	Logging  LoggingConfig
	App      AppConfig
	Planner  PlannerConfig
	Cache    CacheConfig
	Search   SearchConfig
	Data     DataConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// TimeoutConfig holds timeout settings for flight search operations.
type TimeoutConfig struct {
	GlobalSearch time.Duration `env:"TIMEOUT_GLOBAL_SEARCH" envDefault:"5s"`
	PerProvider  time.Duration `env:"TIMEOUT_PER_PROVIDER" envDefault:"2s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Format      string `env:"LOG_FORMAT" envDefault:"json"`
	Caller      bool   `env:"LOG_CALLER" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"flight-query-planner"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// PlannerConfig holds query generation settings.
type PlannerConfig struct {
	// DateMode is "range" (weekend = Sat+Sun, month = every day) or "anchor" (first day only)
	DateMode string `env:"PLANNER_DATE_MODE" envDefault:"range"`

	// MaxQueries caps the cross-product of a single intent
	MaxQueries int `env:"PLANNER_MAX_QUERIES" envDefault:"500"`

	// Timezone decides what "today" is for relative date expressions
	Timezone string `env:"PLANNER_TIMEZONE" envDefault:"UTC"`
}

// CacheConfig holds cache and persistent store settings.
type CacheConfig struct {
	Backend    string `env:"CACHE_BACKEND" envDefault:"memory"`
	DBPath     string `env:"CACHE_DB_PATH" envDefault:"data/cache.db"`
	QuotaBytes int64  `env:"CACHE_MEMORY_QUOTA_BYTES" envDefault:"5242880"`
	KeyPrefix  string `env:"CACHE_KEY_PREFIX" envDefault:"flight-planner:"`

	Flights  CacheInstanceConfig `envPrefix:"CACHE_FLIGHTS_"`
	Queries  CacheInstanceConfig `envPrefix:"CACHE_QUERIES_"`
	Airports CacheInstanceConfig `envPrefix:"CACHE_AIRPORTS_"`
}

// CacheInstanceConfig overrides the size and lifetime of one cache. Zero keeps the default.
type CacheInstanceConfig struct {
	MaxSize int           `env:"MAX_SIZE"`
	TTL     time.Duration `env:"TTL"`
}

// SearchConfig holds search execution settings.
type SearchConfig struct {
	Concurrency   int           `env:"SEARCH_CONCURRENCY" envDefault:"8"`
	RetryAttempts int           `env:"SEARCH_RETRY_ATTEMPTS" envDefault:"2"`
	RetryDelay    time.Duration `env:"SEARCH_RETRY_DELAY" envDefault:"50ms"`
}

// DataConfig holds reference data file locations.
type DataConfig struct {
	AirportsFile string `env:"AIRPORTS_FILE" envDefault:"data/airports.yaml"`
	FlightsFile  string `env:"FLIGHTS_FILE" envDefault:"data/flights.json"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"flight_planner"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	// Validate timeouts are positive
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Timeouts.GlobalSearch <= 0 {
		return fmt.Errorf("TIMEOUT_GLOBAL_SEARCH must be positive")
	}
	if cfg.Timeouts.PerProvider <= 0 {
		return fmt.Errorf("TIMEOUT_PER_PROVIDER must be positive")
	}

	// Validate per-provider timeout is less than global timeout
	if cfg.Timeouts.PerProvider >= cfg.Timeouts.GlobalSearch {
		return fmt.Errorf("TIMEOUT_PER_PROVIDER (%s) should be less than TIMEOUT_GLOBAL_SEARCH (%s)",
			cfg.Timeouts.PerProvider, cfg.Timeouts.GlobalSearch)
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	// Validate app environment
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	if err := validatePlanner(cfg.Planner); err != nil {
		return err
	}
	if err := validateCache(cfg.Cache); err != nil {
		return err
	}

	if cfg.Search.Concurrency < 1 {
		return fmt.Errorf("SEARCH_CONCURRENCY must be at least 1, got %d", cfg.Search.Concurrency)
	}
	if cfg.Search.RetryAttempts < 1 {
		return fmt.Errorf("SEARCH_RETRY_ATTEMPTS must be at least 1, got %d", cfg.Search.RetryAttempts)
	}
	if cfg.Search.RetryDelay < 0 {
		return fmt.Errorf("SEARCH_RETRY_DELAY cannot be negative")
	}

	if cfg.Data.AirportsFile == "" {
		return fmt.Errorf("AIRPORTS_FILE is required")
	}
	if cfg.Data.FlightsFile == "" {
		return fmt.Errorf("FLIGHTS_FILE is required")
	}

	return nil
}

func validatePlanner(p PlannerConfig) error {
	if _, ok := planner.ParseDateMode(p.DateMode); !ok {
		return fmt.Errorf("PLANNER_DATE_MODE must be one of: range, anchor; got %q", p.DateMode)
	}
	if p.MaxQueries < 1 {
		return fmt.Errorf("PLANNER_MAX_QUERIES must be at least 1, got %d", p.MaxQueries)
	}
	if _, err := timeutil.GetLocation(p.Timezone); err != nil {
		return fmt.Errorf("PLANNER_TIMEZONE %q is not a known time zone: %w", p.Timezone, err)
	}
	return nil
}

func validateCache(c CacheConfig) error {
	switch c.Backend {
	case BackendMemory:
		if c.QuotaBytes < 0 {
			return fmt.Errorf("CACHE_MEMORY_QUOTA_BYTES cannot be negative")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("CACHE_DB_PATH is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, sqlite; got %q", c.Backend)
	}

	if c.KeyPrefix == "" {
		return fmt.Errorf("CACHE_KEY_PREFIX is required")
	}

	instances := map[string]CacheInstanceConfig{"FLIGHTS": c.Flights, "QUERIES": c.Queries, "AIRPORTS": c.Airports}
	for _, name := range []string{"FLIGHTS", "QUERIES", "AIRPORTS"} {
		inst := instances[name]
		if inst.MaxSize < 0 {
			return fmt.Errorf("CACHE_%s_MAX_SIZE cannot be negative", name)
		}
		if inst.TTL < 0 {
			return fmt.Errorf("CACHE_%s_TTL cannot be negative", name)
		}
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LoggerConfig converts the logging section to a logger.Config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:        c.Logging.Level,
		Format:       c.Logging.Format,
		EnableCaller: c.Logging.Caller,
		ServiceName:  c.Logging.ServiceName,
	}
}

// PlannerOptions converts the planner section to generator options.
// The configuration is validated, so the date mode and time zone resolve.
func (c *Config) PlannerOptions() []planner.Option {
	mode, _ := planner.ParseDateMode(c.Planner.DateMode)
	return []planner.Option{
		planner.WithDateMode(mode),
		planner.WithMaxQueries(c.Planner.MaxQueries),
		planner.WithLocation(timeutil.MustGetLocation(c.Planner.Timezone)),
	}
}

// UseCaseConfig converts the timeout and search sections to a usecase.Config.
func (c *Config) UseCaseConfig() *usecase.Config {
	r := retry.ProviderConfig
	r.MaxAttempts = c.Search.RetryAttempts
	r.InitialDelay = c.Search.RetryDelay

	return &usecase.Config{
		GlobalTimeout:   c.Timeouts.GlobalSearch,
		ProviderTimeout: c.Timeouts.PerProvider,
		Concurrency:     c.Search.Concurrency,
		Retry:           r,
	}
}

// CacheInstance builds the configuration of the named cache from its overrides.
func (c *Config) CacheInstance(name string, inst CacheInstanceConfig) cache.Config {
	cfg := cache.DefaultConfig(name)
	cfg.Prefix = c.Cache.KeyPrefix + name + ":"
	if inst.MaxSize > 0 {
		cfg.MaxSize = inst.MaxSize
	}
	if inst.TTL > 0 {
		cfg.TTL = inst.TTL
	}
	return cfg
}
