package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Chart computation
	chartsComputed *prometheus.CounterVec
	chartErrors    *prometheus.CounterVec

	// Transit scoring
	transitQueries  prometheus.Counter
	transitEvents   prometheus.Histogram
	scoringDuration prometheus.Histogram

	// Operational state
	providerState prometheus.Gauge
	profileCount  prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager on a custom registry, keeping default Go collector noise
// out of the scrape output.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "meridian",
		subsystem:        "transits",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.chartsComputed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "charts_computed_total",
			Help:      "Total number of charts computed, by kind (natal or current)",
		},
		[]string{"kind"},
	)

	m.chartErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "chart_errors_total",
			Help:      "Total number of failed chart computations, by reason",
		},
		[]string{"reason"},
	)

	m.transitQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transit_queries_total",
		Help:      "Total number of transit scoring queries served",
	})

	m.transitEvents = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transit_events_per_query",
		Help:      "Distribution of qualifying transit events returned per query",
		Buckets:   []float64{0, 5, 10, 20, 40, 60, 80, 100},
	})

	m.scoringDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_duration_milliseconds",
		Help:      "Transit scoring duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.providerState = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ephemeris_provider_state",
		Help:      "Ephemeris provider lifecycle state (0 uninitialized, 1 ready, 2 failed)",
	})

	m.profileCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "profiles_stored",
		Help:      "Number of natal chart profiles currently stored",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the custom registry backing the global manager, for
// promhttp exposition.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level recording helpers on the global manager.

// RecordChartComputed counts a successful chart computation.
func RecordChartComputed(kind string) {
	globalManager.chartsComputed.WithLabelValues(kind).Inc()
}

// RecordChartError counts a failed chart computation.
func RecordChartError(reason string) {
	globalManager.chartErrors.WithLabelValues(reason).Inc()
}

// RecordTransitQuery records one transit query with its result size and
// scoring duration in milliseconds.
func RecordTransitQuery(events int, durationMs float64) {
	globalManager.transitQueries.Inc()
	globalManager.transitEvents.Observe(float64(events))
	globalManager.scoringDuration.Observe(durationMs)
}

// SetProviderState publishes the ephemeris provider lifecycle state.
func SetProviderState(state int) {
	globalManager.providerState.Set(float64(state))
}

// SetProfileCount publishes the stored profile count.
func SetProfileCount(n int) {
	globalManager.profileCount.Set(float64(n))
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}
