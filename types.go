package gsea

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Expression is a genes × samples expression matrix.
type Expression struct {
	Genes   []string
	Samples []string
	// Values holds one row per gene and one column per sample.
	Values *mat.Dense
}

// NewExpression checks that values matches the gene and sample labels and
// that gene identifiers are unique.
func NewExpression(genes, samples []string, values *mat.Dense) (*Expression, error) {
	if values == nil {
		return nil, fmt.Errorf("%w: nil expression matrix", ErrInvalidParameter)
	}
	r, c := values.Dims()
	if r != len(genes) || c != len(samples) {
		return nil, fmt.Errorf("%w: matrix is %d×%d, have %d genes and %d samples",
			ErrInvalidParameter, r, c, len(genes), len(samples))
	}
	if err := uniqueGenes(genes); err != nil {
		return nil, err
	}
	return &Expression{Genes: genes, Samples: samples, Values: values}, nil
}

// Sample returns the expression of every gene in sample column j as a
// ranking in gene order.
func (e *Expression) Sample(j int) Ranking {
	return Ranking{Genes: e.Genes, Values: mat.Col(nil, j, e.Values)}
}

// Phenotype assigns each sample a class label and names the two classes to
// compare. Samples of any other class are ignored.
type Phenotype struct {
	Labels   []string
	Positive string
	Negative string
}

// Ranking pairs gene identifiers with their ranking metric.
type Ranking struct {
	Genes  []string
	Values []float64
}

// Len returns the number of genes.
func (r Ranking) Len() int {
	return len(r.Genes)
}

// Validate checks that genes and values pair up, identifiers are unique
// and values are finite.
func (r Ranking) Validate() error {
	if len(r.Genes) == 0 {
		return fmt.Errorf("%w: empty ranking", ErrInvalidParameter)
	}
	if len(r.Genes) != len(r.Values) {
		return fmt.Errorf("%w: %d genes but %d values", ErrInvalidParameter, len(r.Genes), len(r.Values))
	}
	for i, v := range r.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: gene %q has non-finite value %v", ErrInvalidParameter, r.Genes[i], v)
		}
	}
	return uniqueGenes(r.Genes)
}

// sorted returns a copy ordered by value, descending unless ascending.
// Genes with equal values keep their relative order.
func (r Ranking) sorted(ascending bool) Ranking {
	order := make([]int, r.Len())
	for i := range order {
		order[i] = i
	}
	if ascending {
		sort.SliceStable(order, func(a, b int) bool { return r.Values[order[a]] < r.Values[order[b]] })
	} else {
		sort.SliceStable(order, func(a, b int) bool { return r.Values[order[a]] > r.Values[order[b]] })
	}

	out := Ranking{Genes: make([]string, len(order)), Values: make([]float64, len(order))}
	for i, g := range order {
		out.Genes[i] = r.Genes[g]
		out.Values[i] = r.Values[g]
	}
	return out
}

func uniqueGenes(genes []string) error {
	seen := make(map[string]struct{}, len(genes))
	for _, g := range genes {
		if _, ok := seen[g]; ok {
			return fmt.Errorf("%w: duplicate gene %q", ErrInvalidParameter, g)
		}
		seen[g] = struct{}{}
	}
	return nil
}

// GeneSets maps gene set names to their member gene identifiers.
type GeneSets map[string][]string

// Names returns the set names in lexicographic order, the order of every
// report.
func (s GeneSets) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve maps each set, in name order, to the distinct indices of its
// members within genes. Members absent from genes are dropped.
func (s GeneSets) resolve(genes []string) (names []string, members [][]int) {
	index := make(map[string]int, len(genes))
	for i, g := range genes {
		index[g] = i
	}

	names = s.Names()
	members = make([][]int, len(names))
	for i, name := range names {
		seen := make(map[int]struct{}, len(s[name]))
		set := make([]int, 0, len(s[name]))
		for _, g := range s[name] {
			idx, ok := index[g]
			if !ok {
				continue
			}
			if _, dup := seen[idx]; dup {
				continue
			}
			seen[idx] = struct{}{}
			set = append(set, idx)
		}
		members[i] = set
	}
	return names, members
}
