package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers groups the handlers mounted by RegisterRoutes.
type Handlers struct {
	Flights  *FlightHandler
	Caches   *CacheHandler
	Airports *AirportHandler

	// Metrics serves the Prometheus exposition format when set
	Metrics http.Handler
}

// RegisterRoutes registers all API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware on the versioned group.
// This allows for endpoint-specific middleware configuration.
func RegisterRoutesWithMiddleware(e *echo.Echo, h Handlers, middleware ...echo.MiddlewareFunc) {
	// Health check and metrics (no version prefix, no middleware)
	e.GET("/health", h.Flights.Health)
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics))
	}

	api := e.Group("/api/v1", middleware...)

	queries := api.Group("/queries")
	queries.POST("/plan", h.Flights.PlanQueries)

	flights := api.Group("/flights")
	flights.POST("/search", h.Flights.SearchFlights)

	if h.Caches != nil {
		caches := api.Group("/caches")
		caches.GET("", h.Caches.ListCaches)
		caches.DELETE("/:name", h.Caches.ClearCache)
	}

	if h.Airports != nil {
		api.GET("/airports/:code", h.Airports.GetAirport)
	}
}
