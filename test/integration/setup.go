// Package integration provides helpers and integration tests for the flight query planner.
// Integration tests verify that components work together correctly: the HTTP layer,
// middleware, the planner, the airport catalog, the caches and the providers.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flight-search/flight-query-planner/internal/adapter/airport"
	httpAdapter "github.com/flight-search/flight-query-planner/internal/adapter/http"
	"github.com/flight-search/flight-query-planner/internal/adapter/http/middleware"
	"github.com/flight-search/flight-query-planner/internal/adapter/http/response"
	"github.com/flight-search/flight-query-planner/internal/adapter/provider/fixture"
	"github.com/flight-search/flight-query-planner/internal/app"
	"github.com/flight-search/flight-query-planner/internal/cache"
	"github.com/flight-search/flight-query-planner/internal/cache/memstore"
	"github.com/flight-search/flight-query-planner/internal/config"
	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/metrics"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/retry"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-query-planner/internal/planner"
	"github.com/flight-search/flight-query-planner/internal/usecase"
	"github.com/flight-search/flight-query-planner/test/testutil"
)

// Today is the fixed "now" of every test server: a Friday.
const Today = "2030-03-01T09:00:00Z"

// Options customize a test server.
type Options struct {
	// UseCase overrides the search timeouts and retries; nil uses fast test defaults
	UseCase *usecase.Config

	// Store backs the caches; nil uses a fresh in-memory store
	Store cache.Store

	// MaxQueries caps the planner; zero keeps its default
	MaxQueries int
}

// TestServer wraps an Echo instance wired with the full application stack.
type TestServer struct {
	Echo    *echo.Echo
	UseCase usecase.FlightSearchUseCase
	Caches  *app.Caches
	Catalog *airport.Catalog
	Metrics *metrics.Metrics
	Clock   *timeutil.MockClock
}

// NewTestServer creates a test server over the given providers.
func NewTestServer(t *testing.T, providers []domain.FlightProvider, opts *Options) *TestServer {
	t.Helper()
	if opts == nil {
		opts = &Options{}
	}

	store := opts.Store
	if store == nil {
		store = memstore.New()
	}

	clock := timeutil.NewMockClockFromString(Today)
	m := metrics.New("integration")

	cfg := &config.Config{Cache: config.CacheConfig{KeyPrefix: "it:"}}
	caches := app.NewCaches(cfg, store, cache.WithClock(clock), cache.WithObserver(m))

	catalog, err := airport.Load(testutil.DataPath(t, "airports.yaml"), airport.WithCache(caches.Airports))
	if err != nil {
		t.Fatalf("Failed to load airport catalog: %v", err)
	}

	plannerOpts := []planner.Option{planner.WithClock(clock)}
	if opts.MaxQueries > 0 {
		plannerOpts = append(plannerOpts, planner.WithMaxQueries(opts.MaxQueries))
	}

	ucConfig := opts.UseCase
	if ucConfig == nil {
		ucConfig = &usecase.Config{
			GlobalTimeout:   2 * time.Second,
			ProviderTimeout: 500 * time.Millisecond,
			Retry:           retry.Config{MaxAttempts: 1},
		}
	}

	uc := usecase.NewFlightSearchUseCase(planner.New(plannerOpts...), providers, ucConfig,
		usecase.WithQueryCache(caches.Queries),
		usecase.WithFlightCache(caches.Flights),
		usecase.WithLocations(catalog),
		usecase.WithRecorder(m),
		usecase.WithClock(clock),
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.SetupWithConfig(e, zerolog.Nop(), middleware.Config{
		Recovery: middleware.DefaultRecoveryConfig(),
		Metrics:  m,
	})
	httpAdapter.RegisterRoutes(e, httpAdapter.Handlers{
		Flights:  httpAdapter.NewFlightHandler(uc),
		Caches:   httpAdapter.NewCacheHandler(caches.Registry),
		Airports: httpAdapter.NewAirportHandler(catalog),
		Metrics:  m.Handler(),
	})

	return &TestServer{
		Echo:    e,
		UseCase: uc,
		Caches:  caches,
		Catalog: catalog,
		Metrics: m,
		Clock:   clock,
	}
}

// FixtureProviders loads the providers of the bundled flight fixture file.
func FixtureProviders(t *testing.T) []domain.FlightProvider {
	t.Helper()

	adapters, err := fixture.Load(testutil.DataPath(t, "flights.json"))
	if err != nil {
		t.Fatalf("Failed to load flight fixtures: %v", err)
	}
	providers := make([]domain.FlightProvider, 0, len(adapters))
	for _, a := range adapters {
		a.SetLatency(0)
		providers = append(providers, a)
	}
	return providers
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch b := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// PlanRequest posts an intent to the plan endpoint.
func (ts *TestServer) PlanRequest(body interface{}) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/queries/plan", Body: body})
}

// SearchRequest posts an intent to the search endpoint.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/flights/search", Body: body})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/health"})
}

// CachesRequest lists the cache instances.
func (ts *TestServer) CachesRequest() Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/caches"})
}

// ClearCacheRequest clears the named cache.
func (ts *TestServer) ClearCacheRequest(name string) Response {
	return ts.Do(Request{Method: http.MethodDelete, Path: "/api/v1/caches/" + name})
}

// AirportRequest looks up an airport by code.
func (ts *TestServer) AirportRequest(code string) Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/airports/" + code})
}

// MetricsRequest scrapes the Prometheus endpoint.
func (ts *TestServer) MetricsRequest() Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/metrics"})
}

// ParseSearchResponse parses the response body as a SearchResponse.
func (r *Response) ParseSearchResponse() (*domain.SearchResponse, error) {
	var resp domain.SearchResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParsePlanResponse parses the response body as a PlanResponse.
func (r *Response) ParsePlanResponse() (*domain.PlanResponse, error) {
	var resp domain.PlanResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body as an error payload.
func (r *Response) ParseError() (*response.ErrorDetail, error) {
	var errResp response.ErrorDetail
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return &errResp, nil
}

// ParseCacheStats parses the response body as a list of cache stats.
func (r *Response) ParseCacheStats() ([]cache.Stats, error) {
	var stats []cache.Stats
	if err := json.Unmarshal(r.Body, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// DefaultIntentRequest returns a valid one-way JFK to LAX intent for 2030-03-14.
func DefaultIntentRequest() httpAdapter.IntentRequest {
	return httpAdapter.IntentRequest{
		Origins:       []string{"JFK"},
		Destinations:  []string{"LAX"},
		DepartureDate: "2030-03-14",
	}
}

// DefaultSearchRequest returns DefaultIntentRequest sorted by price.
func DefaultSearchRequest() httpAdapter.SearchFlightsRequest {
	return httpAdapter.SearchFlightsRequest{
		IntentRequest: DefaultIntentRequest(),
		SortBy:        "price",
	}
}

// DefaultIntent returns the domain form of DefaultIntentRequest.
func DefaultIntent() domain.SearchIntent {
	return domain.SearchIntent{
		Origins:                 []string{"JFK"},
		Destinations:            []string{"LAX"},
		DepartureDateExpression: "2030-03-14",
	}
}
