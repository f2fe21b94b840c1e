// Package enrich computes the weighted running-sum enrichment score of gene
// sets against rankings, for the observed ranking and every permutation
// replicate.
package enrich

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrNegativeWeight is returned for a weight exponent below zero.
var ErrNegativeWeight = errors.New("enrich: weight exponent must be >= 0")

// Aggregation selects how the running sum becomes a single score.
type Aggregation uint8

const (
	// Extremum takes the signed maximum deviation of the running sum.
	Extremum Aggregation = iota
	// Sum adds up the running sum, as single-sample scoring does.
	Sum
)

// Params configure the score.
type Params struct {
	// Exponent is the tag weight exponent p in |c|^p.
	Exponent    float64
	Aggregation Aggregation
	// Scale divides a Sum score by the ranking length.
	Scale bool
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.Exponent < 0 || math.IsNaN(p.Exponent) || math.IsInf(p.Exponent, 0) {
		return fmt.Errorf("%w: got %v", ErrNegativeWeight, p.Exponent)
	}
	if p.Aggregation != Extremum && p.Aggregation != Sum {
		return fmt.Errorf("enrich: unknown aggregation %d", p.Aggregation)
	}
	return nil
}

func (p Params) weight(c float64) float64 {
	switch p.Exponent {
	case 0:
		return 1
	case 1:
		return math.Abs(c)
	default:
		return math.Pow(math.Abs(c), p.Exponent)
	}
}

// Status reports whether a score was computed normally.
type Status uint8

const (
	OK Status = iota
	// EmptyOverlap means no gene of the set is in the ranking.
	EmptyOverlap
	// ZeroWeight means every hit has zero weight.
	ZeroWeight
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case EmptyOverlap:
		return "empty overlap"
	case ZeroWeight:
		return "zero weight"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// missStep is the running sum decrement per miss. A set covering the whole
// list has no misses and no decrement.
func missStep(n, hits int) float64 {
	if n == hits {
		return 0
	}
	return 1 / float64(n-hits)
}

// Curve computes the running enrichment score over values for the given
// ascending hit positions, and the score it aggregates to. Degenerate sets
// score 0 with an all-zero curve.
func Curve(values []float64, hits []int, p Params) (res []float64, es float64, st Status) {
	res = make([]float64, len(values))
	total, st := hitWeight(values, hits, p)
	if st != OK {
		return res, 0, st
	}

	walk(values, hits, p, total, func(i int, v float64) { res[i] = v })
	if p.Aggregation == Sum {
		return res, p.sum(res), OK
	}
	return res, signedExtremum(floats.Max(res), floats.Min(res)), OK
}

func hitWeight(values []float64, hits []int, p Params) (float64, Status) {
	if len(hits) == 0 {
		return 0, EmptyOverlap
	}
	var total float64
	for _, h := range hits {
		total += p.weight(values[h])
	}
	if total == 0 {
		return 0, ZeroWeight
	}
	return total, OK
}

// running is the value of the running sum once cum of the hit weight and
// misses genes outside the set have been passed. Curve and Score both go
// through it so that equal inputs give bitwise equal scores.
func running(cum, total float64, misses int, step float64) float64 {
	return cum/total - float64(misses)*step
}

// walk calls fn with every position of the running sum in order.
func walk(values []float64, hits []int, p Params, total float64, fn func(i int, v float64)) {
	step := missStep(len(values), len(hits))
	var cum float64
	next := 0
	for i, c := range values {
		if next < len(hits) && hits[next] == i {
			cum += p.weight(c)
			next++
		}
		fn(i, running(cum, total, i+1-next, step))
	}
}

func (p Params) sum(res []float64) float64 {
	var s float64
	for _, v := range res {
		s += v
	}
	if p.Scale {
		s /= float64(len(res))
	}
	return s
}

// signedExtremum returns hi when it lies strictly further from zero than
// lo, and lo otherwise.
func signedExtremum(hi, lo float64) float64 {
	if math.Abs(hi) > math.Abs(lo) {
		return hi
	}
	return lo
}

// Score returns exactly the score Curve aggregates to without keeping the
// curve. For the signed extremum it visits only the hits: between two hits
// the running sum only falls, so it peaks on a hit and bottoms out just
// before a hit or at the end of the list.
func Score(values []float64, hits []int, p Params) (float64, Status) {
	total, st := hitWeight(values, hits, p)
	if st != OK {
		return 0, st
	}
	n, m := len(values), len(hits)

	if p.Aggregation == Sum {
		var s float64
		walk(values, hits, p, total, func(_ int, v float64) { s += v })
		if p.Scale {
			s /= float64(n)
		}
		return s, OK
	}

	step := missStep(n, m)
	hi, lo := math.Inf(-1), math.Inf(1)
	if hits[0] > 0 {
		first := running(0, total, 1, step)
		hi, lo = first, first
	}
	var cum float64
	for j, h := range hits {
		if h > 0 {
			before := running(cum, total, h-j, step)
			hi, lo = math.Max(hi, before), math.Min(lo, before)
		}
		cum += p.weight(values[h])
		after := running(cum, total, h-j, step)
		hi, lo = math.Max(hi, after), math.Min(lo, after)
	}
	end := running(cum, total, n-m, step)
	hi, lo = math.Max(hi, end), math.Min(lo, end)
	return signedExtremum(hi, lo), OK
}

// LeadingEdge returns the hits that drive the score: those up to and
// including the curve's peak for a non-negative score, or from its trough
// on for a negative one.
func LeadingEdge(res []float64, hits []int, es float64) []int {
	if len(res) == 0 || len(hits) == 0 {
		return nil
	}
	if es >= 0 {
		peak := floats.MaxIdx(res)
		var out []int
		for _, h := range hits {
			if h > peak {
				break
			}
			out = append(out, h)
		}
		return out
	}

	trough := floats.MinIdx(res)
	var out []int
	for _, h := range hits {
		if h >= trough {
			out = append(out, h)
		}
	}
	return out
}
