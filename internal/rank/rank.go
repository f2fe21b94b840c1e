package rank

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Ranking is a gene ordering with the metric value at each ranked position.
type Ranking struct {
	// Order holds expression-matrix row indices, best first.
	Order []int
	// Values holds the metric for Order[i] at position i.
	Values []float64
	// Degenerate counts genes whose metric was undefined and set to 0.
	Degenerate int
}

// Len returns the number of ranked genes.
func (r Ranking) Len() int {
	return len(r.Order)
}

// Compute ranks every gene (row) of x by method m under design d. The sort
// is stable: genes with equal metric keep their row order. Rankings are
// descending unless ascending is set.
func Compute(x *mat.Dense, d Design, m Method, ascending bool) Ranking {
	rows, _ := x.Dims()
	values := make([]float64, rows)
	pos := make([]float64, len(d.Positive))
	neg := make([]float64, len(d.Negative))

	var degenerate int
	for g := 0; g < rows; g++ {
		row := x.RawRowView(g)
		for i, s := range d.Positive {
			pos[i] = row[s]
		}
		for i, s := range d.Negative {
			neg[i] = row[s]
		}
		v, ok := m.score(summarize(pos), summarize(neg))
		if !ok {
			degenerate++
		}
		values[g] = v
	}

	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}
	if ascending {
		sort.SliceStable(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })
	} else {
		sort.SliceStable(order, func(a, b int) bool { return values[order[a]] > values[order[b]] })
	}

	ranked := make([]float64, rows)
	for i, g := range order {
		ranked[i] = values[g]
	}
	return Ranking{Order: order, Values: ranked, Degenerate: degenerate}
}
