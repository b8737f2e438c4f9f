// Package metrics defines the Prometheus metrics exported by the index
// cache: per-unit cache decisions, external indexer runs and durations,
// HTTP request metrics for daemon mode, and cache directory gauges.
//
// Metrics are registered with the default registry via promauto at package
// load time and served by the daemon's /metrics endpoint.
package metrics
