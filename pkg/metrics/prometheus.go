// Package metrics provides Prometheus metrics for the trainerdesk service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the trainerdesk service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpPanics          *prometheus.CounterVec

	// Upstream Backend Metrics
	upstreamRequests        *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec
	customerCacheHits       prometheus.Counter
	customerCacheMisses     prometheus.Counter

	// View Store Metrics
	viewReloads        *prometheus.CounterVec
	viewStaleDiscarded *prometheus.CounterVec
	viewItems          *prometheus.GaugeVec

	// Business Metrics
	mutations       *prometheus.CounterVec
	notices         *prometheus.CounterVec
	goalProgress    prometheus.Gauge
	trainingMinutes prometheus.Gauge

	// Job Queue Metrics
	jobsProcessed *prometheus.CounterVec
	queueDepth    *prometheus.GaugeVec

	// Enhanced Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "trainerdesk",
		subsystem:        "bff",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	return m.metricPrefix + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)
	latencyBuckets := []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}
	if len(m.histogramBuckets) > 0 && !sameBuckets(m.histogramBuckets, prometheus.DefBuckets) {
		latencyBuckets = m.histogramBuckets
	}

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     latencyBuckets,
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpPanics = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_panics_total"),
		Help:        "Handler panics contained by the error boundary",
		ConstLabels: constLabels,
	}, []string{"path"})

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("upstream_requests_total"),
		Help:        "Requests sent to the REST backend by operation and outcome",
		ConstLabels: constLabels,
	}, []string{"operation", "outcome"})

	m.upstreamRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("upstream_request_duration_milliseconds"),
		Help:        "REST backend round-trip time in milliseconds",
		Buckets:     latencyBuckets,
		ConstLabels: constLabels,
	}, []string{"operation"})

	m.customerCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("customer_cache_hits_total"),
		Help:        "Customer lookups served from the cache",
		ConstLabels: constLabels,
	})

	m.customerCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("customer_cache_misses_total"),
		Help:        "Customer lookups that went to the backend",
		ConstLabels: constLabels,
	})

	m.viewReloads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("view_reloads_total"),
		Help:        "View store reloads by view and outcome",
		ConstLabels: constLabels,
	}, []string{"view", "outcome"})

	m.viewStaleDiscarded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("view_stale_responses_total"),
		Help:        "Responses discarded because a newer reload already landed",
		ConstLabels: constLabels,
	}, []string{"view"})

	m.viewItems = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("view_items"),
		Help:        "Records currently held by each view store",
		ConstLabels: constLabels,
	}, []string{"view"})

	m.mutations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("mutations_total"),
		Help:        "Mutations issued against the backend by kind and outcome",
		ConstLabels: constLabels,
	}, []string{"kind", "outcome"})

	m.notices = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("notices_total"),
		Help:        "User-visible notices posted by level",
		ConstLabels: constLabels,
	}, []string{"level"})

	m.goalProgress = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("goal_progress_percent"),
		Help:        "Last computed progress towards the training minutes goal",
		ConstLabels: constLabels,
	})

	m.trainingMinutes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("training_minutes_total"),
		Help:        "Last computed sum of training durations",
		ConstLabels: constLabels,
	})

	m.jobsProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("jobs_processed_total"),
		Help:        "Jobs handled by worker pools by outcome",
		ConstLabels: constLabels,
	}, []string{"pool", "outcome"})

	m.queueDepth = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("queue_depth"),
		Help:        "Jobs waiting in a queue",
		ConstLabels: constLabels,
	}, []string{"queue"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_type_total"),
		Help:        "Total number of errors by type and severity",
		ConstLabels: constLabels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_endpoint_total"),
		Help:        "Total number of errors by endpoint",
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: constLabels,
	})
}

func sameBuckets(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPPanic counts a panic recovered while serving path.
func RecordHTTPPanic(path string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpPanics.WithLabelValues(path).Inc()
}

// RecordUpstreamRequest counts one backend call and its latency.
func RecordUpstreamRequest(operation, outcome string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.upstreamRequests.WithLabelValues(operation, outcome).Inc()
	globalManager.upstreamRequestDuration.WithLabelValues(operation).Observe(durationMs)
}

// RecordCustomerCacheHit counts a cached customer lookup.
func RecordCustomerCacheHit() {
	if !globalManager.enabled {
		return
	}
	globalManager.customerCacheHits.Inc()
}

// RecordCustomerCacheMiss counts an uncached customer lookup.
func RecordCustomerCacheMiss() {
	if !globalManager.enabled {
		return
	}
	globalManager.customerCacheMisses.Inc()
}

// RecordViewReload counts a view store reload.
func RecordViewReload(view, outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.viewReloads.WithLabelValues(view, outcome).Inc()
}

// RecordViewStaleDiscarded counts a response dropped for being older than the published one.
func RecordViewStaleDiscarded(view string) {
	if !globalManager.enabled {
		return
	}
	globalManager.viewStaleDiscarded.WithLabelValues(view).Inc()
}

// UpdateViewItems sets the number of records held by a view.
func UpdateViewItems(view string, count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.viewItems.WithLabelValues(view).Set(float64(count))
}

// RecordMutation counts a create/update/delete/reset call.
func RecordMutation(kind, outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.mutations.WithLabelValues(kind, outcome).Inc()
}

// RecordNotice counts a user-visible notice.
func RecordNotice(level string) {
	if !globalManager.enabled {
		return
	}
	globalManager.notices.WithLabelValues(level).Inc()
}

// UpdateGoalProgress publishes the last statistics computation.
func UpdateGoalProgress(totalMinutes int, progressPercent float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.trainingMinutes.Set(float64(totalMinutes))
	globalManager.goalProgress.Set(progressPercent)
}

// RecordErrorByType records errors by type and severity.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordJobProcessed counts one job handled by pool.
func RecordJobProcessed(pool, outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.jobsProcessed.WithLabelValues(pool, outcome).Inc()
}

// UpdateQueueDepth sets the number of jobs waiting in queue.
func UpdateQueueDepth(queue string, depth int) {
	if !globalManager.enabled {
		return
	}
	globalManager.queueDepth.WithLabelValues(queue).Set(float64(depth))
}

// RecordErrorByEndpoint records errors by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage updates the system memory usage metric.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count metric.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry used for metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
