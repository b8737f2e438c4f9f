package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics(tool string) {
	decisions := []string{
		"reuse",
		"rebuild_missing",
		"rebuild_empty",
		"rebuild_forced",
		"rebuild_corrupted",
	}
	for _, d := range decisions {
		CacheDecisionsTotal.WithLabelValues(d)
	}

	IndexerRunsTotal.WithLabelValues(tool)
	IndexerRunFailures.WithLabelValues(tool)
	IndexerRunDuration.WithLabelValues(tool)
}
