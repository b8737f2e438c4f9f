package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache metrics
var (
	CacheDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_cache_decisions_total",
			Help: "Total number of per-unit cache decisions",
		},
		[]string{"decision"},
	)
)

// Indexer process metrics
var (
	IndexerRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_runs_total",
			Help: "Total number of external indexer invocations",
		},
		[]string{"tool"},
	)

	IndexerRunFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_run_failures_total",
			Help: "Total number of failed external indexer invocations",
		},
		[]string{"tool"},
	)

	IndexerRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_indexer_run_duration_seconds",
			Help:    "External indexer run duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"tool"},
	)
)

// HTTP metrics (daemon mode)
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_indexer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_indexer_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Cache directory metrics
var (
	CacheArtifactsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_indexer_cache_artifacts_total",
			Help: "Number of index artifacts in the cache directory",
		},
	)

	CacheSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_indexer_cache_size_bytes",
			Help: "Total size of index artifacts in the cache directory",
		},
	)
)
