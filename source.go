package gsea

import (
	"math/rand/v2"
	"sync"

	"github.com/discochess/gsea/internal/seed"
)

// sourceSalt decorrelates the two PCG state words built from one seed.
const sourceSalt = 0xda3e39cb94b95bdb

// Source is the caller-owned random state of a sequence of runs. Every run
// draws its base seed from the source, so consecutive runs differ while a
// source rebuilt from the same seed replays them exactly.
// A Source is safe for concurrent use.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource creates a deterministic source.
func NewSource(s int64) *Source {
	u := uint64(s)
	return &Source{rng: rand.New(rand.NewPCG(u, u^sourceSalt))}
}

// NewRandomSource creates a source seeded from the runtime's entropy.
func NewRandomSource() *Source {
	return &Source{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// next advances the source and returns the base seed of one run.
func (s *Source) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Uint64()
}

// derive returns an independent source for sub-run i of a run seeded base.
func derive(base uint64, scope string, i int) *Source {
	return &Source{rng: seed.For(base, scope, i)}
}
