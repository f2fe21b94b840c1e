// Package permute generates the random replicates behind the null
// distributions: shuffled class labelings and shuffled gene set tags.
//
// Every generator draws from a stream derived from a base seed and the
// unit it serves, so a replicate's content depends only on the base seed
// and its unit index, never on scheduling.
package permute

import (
	"math/rand/v2"
	"sort"

	"github.com/discochess/gsea/internal/chunk"
	"github.com/discochess/gsea/internal/rank"
	"github.com/discochess/gsea/internal/seed"
)

// Labelings draws n independent shuffles of truth.
func Labelings(truth rank.Labeling, rng *rand.Rand, n int) []rank.Labeling {
	out := make([]rank.Labeling, n)
	for i := range out {
		out[i] = truth.Shuffled(rng)
	}
	return out
}

// PhenotypeChunk draws the shuffled labelings of replicate range r.
func PhenotypeChunk(truth rank.Labeling, base uint64, r chunk.Range) []rank.Labeling {
	return Labelings(truth, seed.For(base, seed.ScopePhenotype, r.Index), r.Len())
}

// Tags draws random hit positions from a ranked list of fixed length.
// A Tags is not safe for concurrent use.
type Tags struct {
	pool []int
	rng  *rand.Rand
}

// NewTags creates a sampler over positions [0, n).
func NewTags(n int, rng *rand.Rand) *Tags {
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	return &Tags{pool: pool, rng: rng}
}

// GeneSetTags returns the sampler for the gene set at sorted index i.
func GeneSetTags(base uint64, i, n int) *Tags {
	return NewTags(n, seed.For(base, seed.ScopeGeneSet, i))
}

// Draw picks m distinct positions uniformly at random and writes them to
// dst in ascending order. Drawing m positions is equivalent to shuffling a
// hit indicator with m hits.
func (t *Tags) Draw(m int, dst []int) []int {
	n := len(t.pool)
	if m > n {
		m = n
	}
	// Partial Fisher-Yates: the first m slots become a uniform m-subset.
	for i := 0; i < m; i++ {
		j := i + t.rng.IntN(n-i)
		t.pool[i], t.pool[j] = t.pool[j], t.pool[i]
	}
	dst = append(dst[:0], t.pool[:m]...)
	sort.Ints(dst)
	return dst
}
