// Package metrics provides Prometheus metrics for the EcoScore service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric the service exports.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	scoreBuckets   []float64
	registry       prometheus.Registerer

	// Business metrics
	submissions        prometheus.Counter
	scoreDistribution  prometheus.Histogram
	ratings            *prometheus.CounterVec
	issues             *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	storeSize          prometheus.Gauge

	// Suggestion collaborator
	suggestionLatency  *prometheus.HistogramVec
	suggestionFailures *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

//nolint:gochecknoglobals // singleton metrics manager on a custom registry
var (
	globalManager  *Manager
	customRegistry = prometheus.NewRegistry()
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "ecoscore",
		subsystem:      "scoring",
		latencyBuckets: prometheus.DefBuckets,
		scoreBuckets:   prometheus.LinearBuckets(10, 10, 10), // 10..100
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.submissions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_total",
		Help:      "Total number of recorded submissions",
	})
	m.scoreDistribution = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score",
		Help:      "Distribution of sustainability scores",
		Buckets:   m.scoreBuckets,
	})
	m.ratings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ratings_total",
		Help:      "Recorded submissions by letter rating",
	}, []string{"rating"})
	m.issues = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "issues_total",
		Help:      "Issue tags attached to recorded submissions",
	}, []string{"issue"})
	m.validationFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Rejected scoring requests by failure kind",
	}, []string{"kind"})
	m.storeSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_size",
		Help:      "Number of submissions held in memory",
	})

	m.suggestionLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "suggestions",
		Name:      "latency_seconds",
		Help:      "Latency of suggestion generation calls",
		Buckets:   m.latencyBuckets,
	}, []string{"provider", "outcome"})
	m.suggestionFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "suggestions",
		Name:      "failures_total",
		Help:      "Suggestion calls replaced by the placeholder",
	}, []string{"provider"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   m.latencyBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_bytes",
		Help:      "Allocated heap memory in bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Current number of goroutines",
	})
}

// RecordSubmission counts one stored submission with its rating and issues.
func (m *Manager) RecordSubmission(rating string, score float64, issues []string) {
	m.submissions.Inc()
	m.scoreDistribution.Observe(score)
	m.ratings.WithLabelValues(rating).Inc()
	for _, issue := range issues {
		m.issues.WithLabelValues(issue).Inc()
	}
}

// RecordValidationFailure counts a rejected request.
func (m *Manager) RecordValidationFailure(kind string) {
	m.validationFailures.WithLabelValues(kind).Inc()
}

// RecordSuggestion observes one suggestion call.
func (m *Manager) RecordSuggestion(provider string, seconds float64, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
		m.suggestionFailures.WithLabelValues(provider).Inc()
	}
	m.suggestionLatency.WithLabelValues(provider, outcome).Observe(seconds)
}

// UpdateStoreSize sets the in-memory submission count.
func (m *Manager) UpdateStoreSize(n int) { m.storeSize.Set(float64(n)) }

// RecordHTTPRequest counts one HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration in seconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) { m.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	m.systemGoroutineCount.Set(float64(count))
}

// Package-level helpers delegate to the global manager.

func RecordSubmission(rating string, score float64, issues []string) {
	globalManager.RecordSubmission(rating, score, issues)
}

func RecordValidationFailure(kind string) { globalManager.RecordValidationFailure(kind) }

func RecordSuggestion(provider string, seconds float64, ok bool) {
	globalManager.RecordSuggestion(provider, seconds, ok)
}

func UpdateStoreSize(n int) { globalManager.UpdateStoreSize(n) }

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, seconds)
}

func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
