// Package memory implements an in-memory ranking cache backend.
package memory

import (
	"sync/atomic"

	"github.com/discochess/gsea/internal/rank"
	"github.com/discochess/gsea/internal/stats"
)

var _ rank.Backend = (*Backend)(nil)

// Backend is a thread-safe in-memory cache backend.
type Backend struct {
	strategy  rank.Strategy
	collector stats.Collector

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a new memory backend with the given eviction strategy.
// The collector is optional; if nil, a no-op collector is used.
func New(strategy rank.Strategy, collector stats.Collector) *Backend {
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Backend{
		strategy:  strategy,
		collector: collector,
	}
}

// Get retrieves a ranking from the cache.
func (b *Backend) Get(key string) (rank.Ranking, bool) {
	r, ok := b.strategy.Get(key)
	if ok {
		b.hits.Add(1)
		b.collector.IncCounter(stats.MetricCacheHits, 1)
		return r, true
	}
	b.misses.Add(1)
	b.collector.IncCounter(stats.MetricCacheMisses, 1)
	return rank.Ranking{}, false
}

// Set stores a ranking in the cache.
func (b *Backend) Set(key string, r rank.Ranking) {
	b.strategy.Add(key, r)
	b.collector.SetGauge(stats.MetricCacheSize, int64(b.strategy.Len()))
}

// Stats returns current cache statistics.
func (b *Backend) Stats() rank.Stats {
	return rank.Stats{
		Hits:   b.hits.Load(),
		Misses: b.misses.Load(),
		Size:   b.strategy.Len(),
	}
}
