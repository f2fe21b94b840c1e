package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mapBackend is an unbounded backend for testing.
type mapBackend struct {
	data   map[string]Ranking
	hits   int64
	misses int64
}

func newMapBackend() *mapBackend {
	return &mapBackend{data: make(map[string]Ranking)}
}

func (b *mapBackend) Get(key string) (Ranking, bool) {
	if r, ok := b.data[key]; ok {
		b.hits++
		return r, true
	}
	b.misses++
	return Ranking{}, false
}

func (b *mapBackend) Set(key string, r Ranking) {
	b.data[key] = r
}

func (b *mapBackend) Stats() Stats {
	return Stats{Hits: b.hits, Misses: b.misses, Size: len(b.data)}
}

func TestCache_ReusesRanking(t *testing.T) {
	x, _ := fixture()
	backend := newMapBackend()
	c := NewCache(x, SignalToNoise, false, backend)

	l := Labeling{Positive, Positive, Negative, Negative}
	first := c.Rank(l)
	second := c.Rank(Labeling{Positive, Positive, Negative, Negative})

	assert.Equal(t, first, second)
	assert.Equal(t, Stats{Hits: 1, Misses: 1, Size: 1}, c.Stats())

	c.Rank(Labeling{Negative, Positive, Positive, Negative})
	assert.Equal(t, 2, c.Stats().Size)
}

func TestCache_NoBackend(t *testing.T) {
	x, d := fixture()
	c := NewCache(x, DiffOfClasses, false, nil)

	got := c.Rank(Labeling{Positive, Positive, Negative, Negative})
	assert.Equal(t, Compute(x, d, DiffOfClasses, false), got)
	assert.Equal(t, Stats{}, c.Stats())
}

func TestStats_HitRate(t *testing.T) {
	tests := []struct {
		name     string
		hits     int64
		misses   int64
		expected float64
	}{
		{"no requests", 0, 0, 0},
		{"all hits", 10, 0, 100},
		{"all misses", 0, 10, 0},
		{"75% hit rate", 3, 1, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Stats{Hits: tt.hits, Misses: tt.misses}
			if got := s.HitRate(); got != tt.expected {
				t.Errorf("HitRate() = %v, want %v", got, tt.expected)
			}
		})
	}
}
