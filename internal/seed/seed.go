// Package seed derives independent per-unit random seeds from a run seed.
//
// Every parallel unit of work (a gene set, a chunk of permutation replicates)
// gets its own generator seeded from a hash of the run seed, a scope name and
// the unit index. Units never share a mutable generator, and the derived
// stream of a unit does not depend on how many workers run or in which order.
package seed

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Well-known scopes.
const (
	ScopeGeneSet   = "geneset"
	ScopePhenotype = "phenotype"
	ScopeSample    = "sample"
)

// streamSalt separates the second PCG word from the first.
const streamSalt = 0x9e3779b97f4a7c15

// Derive returns the seed for unit index within scope under the run seed base.
func Derive(base uint64, scope string, index int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], base)
	binary.LittleEndian.PutUint64(buf[8:], uint64(index))

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(scope)
	return d.Sum64()
}

// New returns a generator for a derived seed.
func New(derived uint64) *rand.Rand {
	return rand.New(rand.NewPCG(derived, derived^streamSalt))
}

// For is shorthand for New(Derive(base, scope, index)).
func For(base uint64, scope string, index int) *rand.Rand {
	return New(Derive(base, scope, index))
}
