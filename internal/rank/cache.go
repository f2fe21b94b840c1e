package rank

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Strategy is an eviction policy holding rankings by labeling key.
type Strategy interface {
	Get(key string) (Ranking, bool)
	Add(key string, value Ranking) bool
	Len() int
}

// Backend stores rankings and tracks cache statistics. Implementations must
// be safe for concurrent use.
type Backend interface {
	// Get retrieves a cached ranking. Returns false if not found.
	Get(key string) (Ranking, bool)

	// Set stores a ranking.
	Set(key string, r Ranking)

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats contains cache statistics.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Cache ranks one expression matrix under many labelings, reusing the
// ranking of any labeling seen before. A Cache is bound to a single matrix,
// method and direction.
type Cache struct {
	x         *mat.Dense
	method    Method
	ascending bool
	backend   Backend
}

// NewCache creates a cache over x. A nil backend disables caching.
func NewCache(x *mat.Dense, m Method, ascending bool, backend Backend) *Cache {
	return &Cache{x: x, method: m, ascending: ascending, backend: backend}
}

// Rank returns the ranking of the matrix under l.
func (c *Cache) Rank(l Labeling) Ranking {
	if c.backend == nil {
		return Compute(c.x, l.Design(), c.method, c.ascending)
	}

	key := l.Key()
	if r, ok := c.backend.Get(key); ok {
		return r
	}
	r := Compute(c.x, l.Design(), c.method, c.ascending)
	c.backend.Set(key, r)
	return r
}

// Tensor ranks the matrix once per labeling, in order. Callers streaming
// replicates pass one chunk of labelings at a time. Ranking stops early,
// leaving the remaining entries zero, once ctx is done.
func (c *Cache) Tensor(ctx context.Context, labelings []Labeling) []Ranking {
	out := make([]Ranking, len(labelings))
	for i, l := range labelings {
		if ctx.Err() != nil {
			break
		}
		out[i] = c.Rank(l)
	}
	return out
}

// Stats returns cache statistics. A cache without backend reports zeros.
func (c *Cache) Stats() Stats {
	if c.backend == nil {
		return Stats{}
	}
	return c.backend.Stats()
}
