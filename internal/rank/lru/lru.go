// Package lru implements a least-recently-used eviction strategy for rankings.
package lru

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/gsea/internal/rank"
)

var _ rank.Strategy = (*Strategy)(nil)

// Strategy implements LRU eviction.
type Strategy struct {
	cache *lru.Cache[string, rank.Ranking]
}

// New creates a new LRU strategy with the given capacity.
func New(capacity int) (*Strategy, error) {
	c, err := lru.New[string, rank.Ranking](capacity)
	if err != nil {
		return nil, err
	}
	return &Strategy{cache: c}, nil
}

// Get retrieves a ranking by labeling key.
func (s *Strategy) Get(key string) (rank.Ranking, bool) {
	return s.cache.Get(key)
}

// Add stores a ranking. It reports whether an entry was evicted.
func (s *Strategy) Add(key string, value rank.Ranking) bool {
	return s.cache.Add(key, value)
}

// Len returns the number of cached rankings.
func (s *Strategy) Len() int {
	return s.cache.Len()
}
