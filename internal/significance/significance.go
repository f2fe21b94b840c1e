// Package significance turns observed enrichment scores and their
// permutation nulls into nominal p-values, normalized scores and FDR
// q-values.
package significance

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/discochess/gsea/internal/search"
)

// FDRNonInformative is the q-value assigned when the empirical FDR cannot
// be estimated. It reads as "indistinguishable from noise".
const FDRNonInformative = 1.0

// Flag marks a statistic that fell back to its default.
type Flag uint8

const (
	// PValueUndefined: no null values of the score's sign, p = 1.
	PValueUndefined Flag = 1 << iota
	// NESUndefined: no usable same-signed null mean, NES = 0.
	NESUndefined
	// FDRUndefined: no pooled values to compare against, q = FDRNonInformative.
	FDRUndefined
)

// Has reports whether all flags in o are set.
func (f Flag) Has(o Flag) bool {
	return f&o == o
}

// Result holds the statistics of one gene set.
type Result struct {
	ES     float64
	NES    float64
	PValue float64
	FDR    float64
	Flags  Flag
}

// Compute evaluates every gene set. observed[i] is the score of set i and
// row i of null its replicate scores; null may be nil when no replicates
// were drawn.
func Compute(observed []float64, null *mat.Dense) []Result {
	out := make([]Result, len(observed))
	for i, es := range observed {
		out[i].ES = es
		out[i].PValue, out[i].Flags = PValue(es, row(null, i))
	}

	nes, normNull, flags := Normalize(observed, null)
	q, fdrFlags := FDR(nes, normNull, flags)
	for i := range out {
		out[i].NES = nes[i]
		out[i].FDR = q[i]
		out[i].Flags |= flags[i] | fdrFlags[i]
	}
	return out
}

func row(m *mat.Dense, i int) []float64 {
	if m == nil {
		return nil
	}
	return m.RawRowView(i)
}

// PValue is the fraction of same-signed null scores at least as extreme as
// es: null >= es over null >= 0 for es >= 0, and null < es over null < 0
// otherwise.
func PValue(es float64, null []float64) (float64, Flag) {
	var extreme, signed int
	for _, v := range null {
		if es >= 0 {
			if v >= 0 {
				signed++
				if v >= es {
					extreme++
				}
			}
		} else if v < 0 {
			signed++
			if v < es {
				extreme++
			}
		}
	}
	if signed == 0 {
		return 1, PValueUndefined
	}
	return float64(extreme) / float64(signed), 0
}

// normalizer holds the magnitudes of the positive and negative null means
// of one gene set. Zero marks an undefined mean.
type normalizer struct {
	pos, neg float64
}

func newNormalizer(null []float64) normalizer {
	var pos, neg []float64
	for _, v := range null {
		if v >= 0 {
			pos = append(pos, v)
		} else {
			neg = append(neg, v)
		}
	}
	return normalizer{pos: absMean(pos), neg: absMean(neg)}
}

func absMean(v []float64) float64 {
	m, err := stats.Mean(v)
	if err != nil || math.IsNaN(m) {
		return 0
	}
	return math.Abs(m)
}

// scale divides v by the mean magnitude of its sign. ok is false when that
// mean is undefined.
func (n normalizer) scale(v float64) (float64, bool) {
	d := n.neg
	if v >= 0 {
		d = n.pos
	}
	if d == 0 {
		return 0, false
	}
	return v / d, true
}

// Normalize divides each observed score and each of its null scores by the
// mean magnitude of the same-signed null scores of that gene set. Signs
// are preserved. The normalized null has the shape of null and is nil when
// null is.
func Normalize(observed []float64, null *mat.Dense) (nes []float64, normNull *mat.Dense, flags []Flag) {
	nes = make([]float64, len(observed))
	flags = make([]Flag, len(observed))
	if null != nil {
		normNull = mat.DenseCopyOf(null)
	}

	for i, es := range observed {
		n := newNormalizer(row(null, i))
		v, ok := n.scale(es)
		if !ok {
			flags[i] |= NESUndefined
		}
		nes[i] = v

		if normNull == nil {
			continue
		}
		r := normNull.RawRowView(i)
		for j, x := range r {
			r[j], _ = n.scale(x)
		}
	}
	return nes, normNull, flags
}

// FDR estimates a q-value for every normalized score against the null
// pooled over all gene sets and replicates. For nes >= 0 the tail is
// values >= nes among values >= 0; for nes < 0 it is values <= nes among
// values < 0. q is the ratio of the null tail fraction to the observed
// tail fraction, capped at 1.
//
// Sets flagged NESUndefined in norm carry placeholder scores. They are left
// out of both pools and get FDRNonInformative. norm may be nil.
func FDR(nes []float64, normNull *mat.Dense, norm []Flag) ([]float64, []Flag) {
	undefined := func(i int) bool {
		return i < len(norm) && norm[i].Has(NESUndefined)
	}

	var pooled []float64
	if normNull != nil {
		r, c := normNull.Dims()
		pooled = make([]float64, 0, r*c)
		for i := 0; i < r; i++ {
			if !undefined(i) {
				pooled = append(pooled, normNull.RawRowView(i)...)
			}
		}
	}
	observed := make([]float64, 0, len(nes))
	for i, v := range nes {
		if !undefined(i) {
			observed = append(observed, v)
		}
	}
	nullDist := search.NewSorted(pooled)
	obsDist := search.NewSorted(observed)

	q := make([]float64, len(nes))
	flags := make([]Flag, len(nes))
	for i, v := range nes {
		if undefined(i) {
			q[i] = FDRNonInformative
			flags[i] = FDRUndefined
			continue
		}
		piNorm, okNorm := tailFraction(nullDist, v)
		piObs, okObs := tailFraction(obsDist, v)
		if !okNorm || !okObs || piObs == 0 {
			q[i] = FDRNonInformative
			flags[i] = FDRUndefined
			continue
		}
		q[i] = math.Min(piNorm/piObs, 1)
	}
	return q, flags
}

// tailFraction returns the share of same-signed values of d at least as
// extreme as v. ok is false when d has no values of that sign.
func tailFraction(d search.Sorted, v float64) (float64, bool) {
	var tail, signed int
	if v >= 0 {
		tail, signed = d.AtLeast(v), d.AtLeast(0)
	} else {
		tail, signed = d.AtMost(v), d.Below(0)
	}
	if signed == 0 {
		return 0, false
	}
	return float64(tail) / float64(signed), true
}
