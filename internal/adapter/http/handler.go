// Package http provides the HTTP handler layer for the flight query planner API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-query-planner/internal/adapter/http/response"
	"github.com/flight-search/flight-query-planner/internal/cache"
	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/usecase"
)

// FlightHandler handles HTTP requests for planning and flight search endpoints.
type FlightHandler struct {
	useCase usecase.FlightSearchUseCase
}

// NewFlightHandler creates a new FlightHandler with the given use case.
func NewFlightHandler(uc usecase.FlightSearchUseCase) *FlightHandler {
	return &FlightHandler{
		useCase: uc,
	}
}

// PlanQueries handles POST /api/v1/queries/plan
//
// @Summary Expand a search intent into concrete queries
// @Description Resolves date expressions, metro codes and flexibility windows into the list of flight queries
// @Tags queries
// @Accept json
// @Produce json
// @Param request body IntentRequest true "Search intent"
// @Success 200 {object} domain.PlanResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 422 {object} response.ErrorDetail "Unsatisfiable intent"
// @Router /api/v1/queries/plan [post]
func (h *FlightHandler) PlanQueries(c echo.Context) error {
	var req IntentRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	plan, err := h.useCase.Plan(c.Request().Context(), ToDomainIntent(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.PlanResults(c, plan)
}

// SearchFlights handles POST /api/v1/flights/search
//
// @Summary Search for flights
// @Description Plans the intent and searches every query across all providers
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchFlightsRequest true "Search intent with sorting"
// @Success 200 {object} domain.SearchResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 422 {object} response.ErrorDetail "Unsatisfiable intent"
// @Failure 503 {object} response.ErrorDetail "Service unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/flights/search [post]
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var req SearchFlightsRequest

	// Bind request body
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	// Validate request
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.useCase.Search(c.Request().Context(), ToDomainIntent(&req.IntentRequest), ToSearchOptions(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, result)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *FlightHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	// Well-formed intent that prunes down to nothing
	if errors.Is(err, domain.ErrNoCombinations) {
		msg := ""
		if ve, ok := domain.AsValidationError(err); ok {
			msg = ve.Message
		}
		return response.UnprocessableEntity(c, msg)
	}

	// Planner validation, including oversized intents
	if errors.Is(err, domain.ErrInvalidRequest) || errors.Is(err, domain.ErrTooManyCombinations) {
		if ve, ok := domain.AsValidationError(err); ok && ve.Field != "" {
			return response.ValidationError(c, map[string]string{ve.Field: ve.Message})
		}
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	if errors.Is(err, domain.ErrAllProvidersFailed) {
		return response.ServiceUnavailable(c)
	}

	if errors.Is(err, domain.ErrProviderTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	// Default to internal server error
	return response.InternalServerError(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// CacheHandler exposes the named cache instances.
type CacheHandler struct {
	registry *cache.Registry
}

// NewCacheHandler creates a CacheHandler over the registry.
func NewCacheHandler(registry *cache.Registry) *CacheHandler {
	if registry == nil {
		registry = cache.NewRegistry()
	}
	return &CacheHandler{registry: registry}
}

// ListCaches handles GET /api/v1/caches
//
// @Summary List cache instances
// @Tags caches
// @Produce json
// @Success 200 {array} cache.Stats
// @Router /api/v1/caches [get]
func (h *CacheHandler) ListCaches(c echo.Context) error {
	return response.OK(c, h.registry.Stats())
}

// ClearCache handles DELETE /api/v1/caches/:name
//
// @Summary Clear one cache instance and its persisted entries
// @Tags caches
// @Param name path string true "Cache name"
// @Success 204
// @Failure 404 {object} response.ErrorDetail "Unknown cache"
// @Router /api/v1/caches/{name} [delete]
func (h *CacheHandler) ClearCache(c echo.Context) error {
	instance, err := h.registry.Get(c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrCacheNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.InternalServerError(c)
	}

	instance.Clear()
	return response.NoContent(c)
}

// AirportLookup resolves airport codes to reference metadata.
type AirportLookup interface {
	Lookup(code string) (domain.Airport, bool)
}

// AirportHandler serves airport reference data.
type AirportHandler struct {
	airports AirportLookup
}

// NewAirportHandler creates an AirportHandler over the lookup.
func NewAirportHandler(airports AirportLookup) *AirportHandler {
	return &AirportHandler{airports: airports}
}

// GetAirport handles GET /api/v1/airports/:code
//
// @Summary Look up an airport by IATA code
// @Tags airports
// @Produce json
// @Param code path string true "Airport code"
// @Success 200 {object} domain.Airport
// @Failure 404 {object} response.ErrorDetail "Unknown airport"
// @Router /api/v1/airports/{code} [get]
func (h *AirportHandler) GetAirport(c echo.Context) error {
	code := c.Param("code")
	a, ok := h.airports.Lookup(code)
	if !ok {
		return response.NotFound(c, fmt.Sprintf("airport %q not found", code))
	}
	return response.OK(c, a)
}
