package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Config selects the optional middleware installed by SetupWithConfig.
type Config struct {
	Recovery RecoveryConfig

	// Metrics receives request observations when set
	Metrics HTTPRecorder
}

// Setup registers all middleware on the Echo instance in the correct order.
// The order is important:
//  1. RequestID - First, to generate/propagate request ID for all subsequent logging
//  2. RequestLogger - Second, logs all requests with request ID
//  3. Metrics - Optional, observes status and latency per route
//  4. Recover - Last, catches panics and returns 500 (wraps handlers)
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger) {
	SetupWithConfig(e, log, Config{Recovery: DefaultRecoveryConfig()})
}

// SetupWithConfig registers middleware with custom recovery and metrics configuration.
func SetupWithConfig(e *echo.Echo, log zerolog.Logger, config Config) {
	e.Use(chain(log, config)...)
}

// Chain returns all middleware as a slice for use with route groups.
// Useful when you want to apply middleware to specific route groups only.
func Chain(log zerolog.Logger) []echo.MiddlewareFunc {
	return chain(log, Config{Recovery: DefaultRecoveryConfig()})
}

func chain(log zerolog.Logger, config Config) []echo.MiddlewareFunc {
	mws := []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(log),
	}
	if config.Metrics != nil {
		mws = append(mws, Metrics(config.Metrics))
	}
	return append(mws, RecoverWithConfig(log, config.Recovery))
}
