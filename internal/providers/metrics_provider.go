package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"mcstatus/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncProbesTotal(protocol string, success bool)
	ObserveProbeDuration(protocol string, duration time.Duration)
	IncResolvesTotal(outcome string)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	probesTotal         *prometheus.CounterVec
	probeDuration       *prometheus.HistogramVec
	resolvesTotal       *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncProbesTotal(protocol string, success bool) {
	result := "error"
	if success {
		result = "success"
	}
	m.probesTotal.WithLabelValues(protocol, result).Inc()
}

func (m *MetricsProvider) ObserveProbeDuration(protocol string, duration time.Duration) {
	m.probeDuration.WithLabelValues(protocol).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncResolvesTotal(outcome string) {
	m.resolvesTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// probeBuckets cover sub-millisecond LAN pings up to the 5s probe ceiling.
var probeBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mcstatus_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mcstatus_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mcstatus_cache_hits_total",
			Help: "Total number of status cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mcstatus_cache_misses_total",
			Help: "Total number of status cache misses",
		}),

		probesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mcstatus_probes_total",
			Help: "Total number of live probes by protocol and result",
		}, []string{"protocol", "result"}),

		probeDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mcstatus_probe_duration_seconds",
			Help:    "Live probe duration in seconds",
			Buckets: probeBuckets,
		}, []string{"protocol"}),

		resolvesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mcstatus_resolves_total",
			Help: "Total number of status resolutions by outcome",
		}, []string{"outcome"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mcstatus_persistence_duration_seconds",
			Help:    "Duration of per-server file writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func NewNoopMetrics() MetricsProviderInterface {
	return &noopMetrics{}
}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncProbesTotal(_ string, _ bool)                  {}
func (n *noopMetrics) ObserveProbeDuration(_ string, _ time.Duration)   {}
func (n *noopMetrics) IncResolvesTotal(_ string)                        {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
