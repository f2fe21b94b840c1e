package gsea

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/discochess/gsea/internal/enrich"
)

// Fallback marks a statistic that could not be computed normally and was
// replaced by its documented default.
type Fallback uint8

const (
	// FallbackEmptyOverlap: no member of the set is in the ranking. ES is 0.
	FallbackEmptyOverlap Fallback = 1 << iota
	// FallbackZeroWeight: every hit has a zero metric. ES is 0.
	FallbackZeroWeight
	// FallbackPValue: no null score of the observed sign. p is 1.
	FallbackPValue
	// FallbackNES: the same-signed null mean is undefined. NES is 0.
	FallbackNES
	// FallbackFDR: the FDR tail ratio is undefined. q is FDRNonInformative.
	FallbackFDR
)

var fallbackNames = []string{"empty_overlap", "zero_weight", "pvalue", "nes", "fdr"}

// Has reports whether all flags in o are set.
func (f Fallback) Has(o Fallback) bool {
	return f&o == o
}

func (f Fallback) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for i, name := range fallbackNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// err returns the condition behind the flags, or nil.
func (f Fallback) err() error {
	var errs []error
	if f.Has(FallbackEmptyOverlap) {
		errs = append(errs, fmt.Errorf("%w: no overlap with the ranking", ErrDegenerateInput))
	}
	if f.Has(FallbackZeroWeight) {
		errs = append(errs, fmt.Errorf("%w: all hits have zero weight", ErrDegenerateInput))
	}
	if f.Has(FallbackPValue) {
		errs = append(errs, fmt.Errorf("%w: no same-signed null scores for the p-value", ErrNumericIndeterminate))
	}
	if f.Has(FallbackNES) {
		errs = append(errs, fmt.Errorf("%w: undefined same-signed null mean", ErrNumericIndeterminate))
	}
	if f.Has(FallbackFDR) {
		errs = append(errs, fmt.Errorf("%w: undefined FDR tail ratio", ErrNumericIndeterminate))
	}
	return errors.Join(errs...)
}

// GeneSetResult holds the statistics of one gene set.
type GeneSetResult struct {
	Term   string
	ES     float64
	NES    float64
	PValue float64
	FDR    float64
	// Null holds the replicate scores, empty without permutations.
	Null []float64
	// HitIndices holds the ascending positions of the set's genes in the
	// observed ranking.
	HitIndices []int
	// RES is the running enrichment score along the observed ranking.
	RES       []float64
	Fallbacks Fallback
}

// LeadingEdge returns the hit positions that account for the score.
func (r GeneSetResult) LeadingEdge() []int {
	return enrich.LeadingEdge(r.RES, r.HitIndices, r.ES)
}

// Report is the outcome of a run.
type Report struct {
	RunID           uuid.UUID
	Mode            Mode
	PermutationType PermutationType
	Permutations    int
	// Ranking is the observed ranking the hit positions refer to.
	Ranking Ranking
	// DegenerateGenes counts genes whose ranking metric was undefined and
	// set to 0.
	DegenerateGenes int
	// Results are ordered by gene set name.
	Results []GeneSetResult
}

// Lookup returns the result of the named gene set.
func (r *Report) Lookup(term string) (GeneSetResult, bool) {
	for _, res := range r.Results {
		if res.Term == term {
			return res, true
		}
	}
	return GeneSetResult{}, false
}

// Significant returns the results with FDR at most maxFDR, in report order.
func (r *Report) Significant(maxFDR float64) []GeneSetResult {
	var out []GeneSetResult
	for _, res := range r.Results {
		if res.FDR <= maxFDR {
			out = append(out, res)
		}
	}
	return out
}

// LeadingEdgeGenes returns the gene identifiers of a result's leading edge.
func (r *Report) LeadingEdgeGenes(res GeneSetResult) []string {
	edge := res.LeadingEdge()
	genes := make([]string, len(edge))
	for i, pos := range edge {
		genes[i] = r.Ranking.Genes[pos]
	}
	return genes
}

// Err joins every recovered condition of the run. Each wraps
// ErrDegenerateInput or ErrNumericIndeterminate. It returns nil for a clean
// run.
func (r *Report) Err() error {
	var errs []error
	if r.DegenerateGenes > 0 {
		errs = append(errs, fmt.Errorf("%w: %d genes with undefined ranking metric", ErrDegenerateInput, r.DegenerateGenes))
	}
	for _, res := range r.Results {
		if err := res.Fallbacks.err(); err != nil {
			errs = append(errs, fmt.Errorf("gene set %q: %w", res.Term, err))
		}
	}
	return errors.Join(errs...)
}
