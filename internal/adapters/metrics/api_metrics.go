package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetricsCollector handles the metrics of calls to sibling shards
type APIMetricsCollector struct {
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiRetries         *prometheus.CounterVec
	apiRateLimitWait   *prometheus.HistogramVec
}

// NewAPIMetricsCollector creates a new API metrics collector
func NewAPIMetricsCollector() *APIMetricsCollector {
	return &APIMetricsCollector{
		apiRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sibling_requests_total",
				Help:      "Total number of requests to sibling shards by shard, method and status code",
			},
			[]string{"shard", "method", "status_code"},
		),
		apiRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sibling_request_duration_seconds",
				Help:      "Sibling shard request duration distribution",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"shard", "method"},
		),
		apiRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sibling_retries_total",
				Help:      "Total number of retried sibling shard requests",
			},
			[]string{"shard", "method", "reason"},
		),
		apiRateLimitWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sibling_rate_limit_wait_seconds",
				Help:      "Time spent waiting for the outbound rate limiter",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"shard"},
		),
	}
}

// Register registers all API metrics
func (c *APIMetricsCollector) Register(reg prometheus.Registerer) error {
	return registerAll(reg, c.apiRequestsTotal, c.apiRequestDuration, c.apiRetries, c.apiRateLimitWait)
}

// RecordAPIRequest records a completed request; statusCode 0 means no response
func (c *APIMetricsCollector) RecordAPIRequest(shard, method string, statusCode int, duration float64) {
	c.apiRequestsTotal.WithLabelValues(shard, method, strconv.Itoa(statusCode)).Inc()
	c.apiRequestDuration.WithLabelValues(shard, method).Observe(duration)
}

// RecordAPIRetry records a retry attempt
func (c *APIMetricsCollector) RecordAPIRetry(shard, method, reason string) {
	c.apiRetries.WithLabelValues(shard, method, reason).Inc()
}

// RecordRateLimitWait records time spent waiting for the rate limiter
func (c *APIMetricsCollector) RecordRateLimitWait(shard string, duration float64) {
	c.apiRateLimitWait.WithLabelValues(shard).Observe(duration)
}
