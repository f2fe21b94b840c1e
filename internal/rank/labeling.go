package rank

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrMissingClass is returned when a designated class has no samples.
var ErrMissingClass = errors.New("rank: class has no samples")

// Class codes used in a Labeling.
const (
	Neither  int8 = 0
	Positive int8 = 1
	Negative int8 = -1
)

// Labeling assigns every sample column to the positive class, the negative
// class, or neither.
type Labeling []int8

// NewLabeling builds a labeling from per-sample class labels.
func NewLabeling(labels []string, pos, neg string) (Labeling, error) {
	if pos == neg {
		return nil, fmt.Errorf("rank: positive and negative class are both %q", pos)
	}

	l := make(Labeling, len(labels))
	var nPos, nNeg int
	for i, label := range labels {
		switch label {
		case pos:
			l[i] = Positive
			nPos++
		case neg:
			l[i] = Negative
			nNeg++
		}
	}
	if nPos == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingClass, pos)
	}
	if nNeg == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingClass, neg)
	}
	return l, nil
}

// Design returns the sample column indices of each class.
func (l Labeling) Design() Design {
	var d Design
	for i, c := range l {
		switch c {
		case Positive:
			d.Positive = append(d.Positive, i)
		case Negative:
			d.Negative = append(d.Negative, i)
		}
	}
	return d
}

// Key identifies the labeling; equal labelings have equal keys.
func (l Labeling) Key() string {
	b := make([]byte, len(l))
	for i, c := range l {
		b[i] = byte(c + 1)
	}
	return string(b)
}

// Shuffled returns a shuffled copy of the labeling.
func (l Labeling) Shuffled(r *rand.Rand) Labeling {
	out := make(Labeling, len(l))
	copy(out, l)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Design lists the sample columns belonging to each class.
type Design struct {
	Positive []int
	Negative []int
}
