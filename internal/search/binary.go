// Package search counts the tail of a sorted sample with binary search.
package search

import (
	"math"
	"sort"
)

// Sorted is an ascending sample of finite values.
type Sorted []float64

// NewSorted returns a sorted copy of values with NaN dropped.
func NewSorted(values []float64) Sorted {
	s := make(Sorted, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			s = append(s, v)
		}
	}
	sort.Float64s(s)
	return s
}

// AtLeast returns the number of values >= v.
func (s Sorted) AtLeast(v float64) int {
	return len(s) - s.firstAtLeast(v)
}

// Below returns the number of values < v.
func (s Sorted) Below(v float64) int {
	return s.firstAtLeast(v)
}

// AtMost returns the number of values <= v.
func (s Sorted) AtMost(v float64) int {
	return sort.Search(len(s), func(i int) bool { return s[i] > v })
}

// Above returns the number of values > v.
func (s Sorted) Above(v float64) int {
	return len(s) - s.AtMost(v)
}

func (s Sorted) firstAtLeast(v float64) int {
	return sort.Search(len(s), func(i int) bool { return s[i] >= v })
}
