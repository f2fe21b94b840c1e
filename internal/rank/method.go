// Package rank converts an expression matrix and a two-class labeling into a
// ranked gene list.
package rank

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrUnknownMethod is returned for a ranking method name that is not supported.
var ErrUnknownMethod = errors.New("rank: unknown ranking method")

// Method names a ranking statistic.
type Method string

// Supported ranking statistics.
const (
	SignalToNoise      Method = "signal_to_noise"
	TTest              Method = "t_test"
	RatioOfClasses     Method = "ratio_of_classes"
	DiffOfClasses      Method = "diff_of_classes"
	Log2RatioOfClasses Method = "log2_ratio_of_classes"
)

// Methods returns every supported method.
func Methods() []Method {
	return []Method{SignalToNoise, TTest, RatioOfClasses, DiffOfClasses, Log2RatioOfClasses}
}

// ParseMethod validates a method name.
func ParseMethod(name string) (Method, error) {
	for _, m := range Methods() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// classSummary holds the per-class moments used by every statistic.
type classSummary struct {
	n    float64
	mean float64
	sd   float64
}

// summarize returns mean and sample standard deviation. A single
// observation has zero spread.
func summarize(v []float64) classSummary {
	s := classSummary{n: float64(len(v))}
	if len(v) == 0 {
		return s
	}
	s.mean = stat.Mean(v, nil)
	if len(v) > 1 {
		s.sd = stat.StdDev(v, nil)
	}
	return s
}

// score evaluates the statistic. ok is false when the statistic is undefined
// for this gene (zero denominator, non-positive log argument); the value is
// then 0.
func (m Method) score(pos, neg classSummary) (v float64, ok bool) {
	switch m {
	case SignalToNoise:
		den := pos.sd + neg.sd
		if den == 0 {
			return 0, false
		}
		v = (pos.mean - neg.mean) / den
	case TTest:
		den := math.Sqrt(pos.sd*pos.sd/pos.n + neg.sd*neg.sd/neg.n)
		if den == 0 {
			return 0, false
		}
		v = (pos.mean - neg.mean) / den
	case RatioOfClasses:
		if neg.mean == 0 {
			return 0, false
		}
		v = pos.mean / neg.mean
	case DiffOfClasses:
		v = pos.mean - neg.mean
	case Log2RatioOfClasses:
		if neg.mean == 0 {
			return 0, false
		}
		ratio := pos.mean / neg.mean
		if ratio <= 0 {
			return 0, false
		}
		v = math.Log2(ratio)
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
