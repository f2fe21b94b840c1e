package gsea

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallback_String(t *testing.T) {
	assert.Equal(t, "none", Fallback(0).String())
	assert.Equal(t, "empty_overlap|nes", (FallbackEmptyOverlap | FallbackNES).String())
}

func TestReport_Err(t *testing.T) {
	clean := &Report{Results: []GeneSetResult{{Term: "a"}}}
	assert.NoError(t, clean.Err())

	rep := &Report{
		DegenerateGenes: 2,
		Results: []GeneSetResult{
			{Term: "a"},
			{Term: "b", Fallbacks: FallbackZeroWeight | FallbackFDR},
		},
	}
	err := rep.Err()
	assert.ErrorIs(t, err, ErrDegenerateInput)
	assert.ErrorIs(t, err, ErrNumericIndeterminate)
	assert.Contains(t, err.Error(), `gene set "b"`)
	assert.Contains(t, err.Error(), "2 genes")

	onlyFDR := &Report{Results: []GeneSetResult{{Term: "c", Fallbacks: FallbackFDR}}}
	assert.False(t, errors.Is(onlyFDR.Err(), ErrDegenerateInput))
}

func TestReport_Significant(t *testing.T) {
	rep := &Report{Results: []GeneSetResult{
		{Term: "a", FDR: 0.01},
		{Term: "b", FDR: 0.3},
		{Term: "c", FDR: 0.25},
		{Term: "d", FDR: FDRNonInformative},
	}}

	var terms []string
	for _, r := range rep.Significant(0.25) {
		terms = append(terms, r.Term)
	}
	assert.Equal(t, []string{"a", "c"}, terms)
	assert.Empty(t, rep.Significant(0))
}

func TestGeneSetResult_LeadingEdge(t *testing.T) {
	// A negatively enriched set: hits at the bottom of five genes.
	res := GeneSetResult{
		ES:         -1,
		HitIndices: []int{3, 4},
		RES:        []float64{-1.0 / 3, -2.0 / 3, -1, -1.0 / 3, 0},
	}
	assert.Equal(t, []int{3, 4}, res.LeadingEdge())
}
