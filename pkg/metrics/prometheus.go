// Package metrics provides Prometheus metrics for the smurf checker.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row outcomes accepted by RecordRow.
const (
	OutcomeChecked      = "checked"
	OutcomeInvalidID    = "invalid_id"
	OutcomeLookupFailed = "lookup_failed"
	OutcomeUnexpected   = "unexpected"
)

var defaultLatencyBuckets = []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3200, 6400, 12800}

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	registry       prometheus.Registerer

	// Upstream tracker API
	trackerRequests *prometheus.CounterVec
	trackerLatency  prometheus.Histogram
	throttleWait    prometheus.Histogram

	// Batch processing
	rowsProcessed *prometheus.CounterVec
	suspicious    prometheus.Counter
	batches       prometheus.Counter
	batchDuration prometheus.Histogram

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager; collectors are registered on the configured registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "smurfwatch",
		subsystem:      "checker",
		latencyBuckets: defaultLatencyBuckets,
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

	m.trackerRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracker_requests_total",
		Help:      "Profile requests sent to the tracker API by status class",
	}, []string{"status"})

	m.trackerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracker_request_latency_milliseconds",
		Help:      "Latency of tracker API profile requests in milliseconds",
		Buckets:   m.latencyBuckets,
	})

	m.throttleWait = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "throttle_wait_milliseconds",
		Help:      "Time spent waiting for the inter-call spacing in milliseconds",
		Buckets:   m.latencyBuckets,
	})

	m.rowsProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_processed_total",
		Help:      "Input rows processed by outcome",
	}, []string{"outcome"})

	m.suspicious = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suspicious_accounts_total",
		Help:      "Rows flagged as suspicious",
	})

	m.batches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_total",
		Help:      "Batches processed",
	})

	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duration_milliseconds",
		Help:      "Wall time to process a whole batch in milliseconds",
		Buckets:   prometheus.ExponentialBuckets(100, 2, 14),
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.latencyBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// statusClass folds a status code into 2xx/4xx/5xx; 0 means the request never got a response.
func statusClass(code int) string {
	if code <= 0 {
		return "transport_error"
	}
	return strconv.Itoa(code/100) + "xx"
}

// RecordTrackerRequest records one upstream call and its latency.
func RecordTrackerRequest(statusCode int, latencyMs float64) {
	globalManager.trackerRequests.WithLabelValues(statusClass(statusCode)).Inc()
	globalManager.trackerLatency.Observe(latencyMs)
}

// RecordThrottleWait records how long a call slept before being sent.
func RecordThrottleWait(waitMs float64) {
	globalManager.throttleWait.Observe(waitMs)
}

// RecordRow counts a processed row under one of the Outcome* labels.
func RecordRow(outcome string) error {
	switch outcome {
	case OutcomeChecked, OutcomeInvalidID, OutcomeLookupFailed, OutcomeUnexpected:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcome, outcome)
	}
	globalManager.rowsProcessed.WithLabelValues(outcome).Inc()
	return nil
}

// RecordSuspicious increments the suspicious accounts counter.
func RecordSuspicious() {
	globalManager.suspicious.Inc()
}

// RecordBatch records a finished batch.
func RecordBatch(durationMs float64) {
	globalManager.batches.Inc()
	globalManager.batchDuration.Observe(durationMs)
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
