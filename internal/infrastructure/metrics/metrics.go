// Package metrics exposes Prometheus metrics for the planner, the caches and the providers.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flight-search/flight-query-planner/internal/cache"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "flight_planner"

// Plan outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid"
	OutcomeUnsatisfiable = "unsatisfiable"
	OutcomeTooMany       = "too_many"
	OutcomeFailed        = "failed"
)

// Metrics holds all collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	// Planner metrics
	PlansTotal     *prometheus.CounterVec
	QueriesPerPlan prometheus.Histogram

	// Cache metrics
	CacheHits            *prometheus.CounterVec
	CacheMisses          *prometheus.CounterVec
	CacheEvictions       *prometheus.CounterVec
	CachePersistFailures *prometheus.CounterVec

	// Provider metrics
	ProviderRequests *prometheus.CounterVec
	ProviderLatency  *prometheus.HistogramVec

	// Search metrics
	SearchDuration prometheus.Histogram

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
}

var _ cache.Observer = (*Metrics)(nil)

// New creates a Metrics instance with the given namespace on its own registry,
// including the Go runtime and process collectors.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		PlansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_total",
			Help:      "Query plans by outcome",
		}, []string{"outcome"}),
		QueriesPerPlan: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "queries_per_plan",
			Help:      "Number of flight queries generated per successful plan",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
		}),

		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Cache hits by cache name",
		}, []string{"cache"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache misses by cache name",
		}, []string{"cache"}),
		CacheEvictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Cache evictions by cache name and reason",
		}, []string{"cache", "reason"}),
		CachePersistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_persist_failures_total",
			Help:      "Failed writes to the persistent store by cache name and operation",
		}, []string{"cache", "op"}),

		ProviderRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Provider calls by provider and status",
		}, []string{"provider", "status"}),
		ProviderLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_latency_seconds",
			Help:      "Provider call latency in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2, 5},
		}, []string{"provider"}),

		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end flight search duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordPlan records a plan outcome and, on success, the number of queries generated.
func (m *Metrics) RecordPlan(outcome string, queries int) {
	m.PlansTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.QueriesPerPlan.Observe(float64(queries))
	}
}

// RecordProviderCall records one provider call.
func (m *Metrics) RecordProviderCall(provider, status string, duration time.Duration) {
	m.ProviderRequests.WithLabelValues(provider, status).Inc()
	m.ProviderLatency.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordSearch records the duration of a complete search.
func (m *Metrics) RecordSearch(duration time.Duration) {
	m.SearchDuration.Observe(duration.Seconds())
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// Hit implements cache.Observer.
func (m *Metrics) Hit(name string) {
	m.CacheHits.WithLabelValues(name).Inc()
}

// Miss implements cache.Observer.
func (m *Metrics) Miss(name string) {
	m.CacheMisses.WithLabelValues(name).Inc()
}

// Evicted implements cache.Observer.
func (m *Metrics) Evicted(name string, reason cache.EvictReason) {
	m.CacheEvictions.WithLabelValues(name, string(reason)).Inc()
}

// PersistFailed implements cache.Observer.
func (m *Metrics) PersistFailed(name, op string) {
	m.CachePersistFailures.WithLabelValues(name, op).Inc()
}
