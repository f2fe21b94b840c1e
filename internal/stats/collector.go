// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Run metrics.
	MetricRuns         = "gsea_runs_total"
	MetricGeneSets     = "gsea_gene_sets_total"
	MetricPermutations = "gsea_permutations_total"
	MetricFallbacks    = "gsea_fallbacks_total"
	MetricRunSeconds   = "gsea_run_seconds"

	// Ranking cache metrics.
	MetricCacheHits   = "gsea_ranking_cache_hits_total"
	MetricCacheMisses = "gsea_ranking_cache_misses_total"
	MetricCacheSize   = "gsea_ranking_cache_size"
)

var help = map[string]string{
	MetricRuns:         "Completed enrichment runs.",
	MetricGeneSets:     "Gene sets scored across all runs.",
	MetricPermutations: "Permutation replicates scored across all runs.",
	MetricFallbacks:    "Gene sets that took a numeric fallback.",
	MetricRunSeconds:   "Wall time of a single enrichment run.",
	MetricCacheHits:    "Permuted labelings served from the ranking cache.",
	MetricCacheMisses:  "Permuted labelings that had to be ranked.",
	MetricCacheSize:    "Rankings currently held in the ranking cache.",
}

// Help returns the description of a known metric, or the name itself.
func Help(name string) string {
	if h, ok := help[name]; ok {
		return h
	}
	return name
}

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
