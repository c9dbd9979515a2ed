// Package metrics exposes Prometheus collectors for the HTTP surface, the
// upstream NASA clients and the in-process caches.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astropulse_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "astropulse_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// UpstreamRequests counts calls to third-party APIs by endpoint and outcome.
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astropulse_upstream_requests_total",
			Help: "Upstream API calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	// UpstreamDuration observes upstream call latency, retries included.
	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "astropulse_upstream_duration_seconds",
			Help:    "Upstream API call duration in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "astropulse_circuit_breaker_state",
			Help: "Upstream circuit breaker state (0 closed, 1 half-open, 2 open).",
		},
		[]string{"name"},
	)

	// CacheLookups counts in-process cache hits and misses.
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astropulse_cache_lookups_total",
			Help: "In-process cache lookups by cache and result.",
		},
		[]string{"cache", "result"},
	)

	// NEOSkipped counts feed objects excluded from a summary or an ingestion run.
	NEOSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "astropulse_neo_skipped_objects_total",
			Help: "Near-Earth objects skipped for violating data-shape invariants.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpDurationSeconds,
		UpstreamRequests,
		UpstreamDuration,
		CircuitBreakerState,
		CacheLookups,
		NEOSkipped,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and duration for each request. The
// route template is used as path label so ids do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		code := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(path, c.Request.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
