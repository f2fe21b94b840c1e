package gsea

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewExpression(t *testing.T) {
	x := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	e, err := NewExpression([]string{"a", "b"}, []string{"s1", "s2", "s3"}, x)
	require.NoError(t, err)
	assert.Equal(t, Ranking{Genes: []string{"a", "b"}, Values: []float64{2, 5}}, e.Sample(1))

	_, err = NewExpression([]string{"a"}, []string{"s1", "s2", "s3"}, x)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewExpression([]string{"a", "a"}, []string{"s1", "s2", "s3"}, x)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewExpression(nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestRanking_Validate(t *testing.T) {
	tests := []struct {
		name    string
		r       Ranking
		wantErr bool
	}{
		{"valid", fiveGenes(), false},
		{"empty", Ranking{}, true},
		{"length mismatch", Ranking{Genes: []string{"A", "B"}, Values: []float64{1}}, true},
		{"duplicate", Ranking{Genes: []string{"A", "A"}, Values: []float64{1, 2}}, true},
		{"nan", Ranking{Genes: []string{"A"}, Values: []float64{math.NaN()}}, true},
		{"inf", Ranking{Genes: []string{"A"}, Values: []float64{math.Inf(1)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRanking_SortedIsStable(t *testing.T) {
	r := Ranking{Genes: []string{"a", "b", "c", "d"}, Values: []float64{1, 2, 1, 2}}

	assert.Equal(t, []string{"b", "d", "a", "c"}, r.sorted(false).Genes)
	assert.Equal(t, []string{"a", "c", "b", "d"}, r.sorted(true).Genes)
	assert.Equal(t, []string{"a", "b", "c", "d"}, r.Genes, "input must not change")
}

func TestGeneSets_Resolve(t *testing.T) {
	sets := GeneSets{
		"b": {"x", "y", "x", "missing"},
		"a": {"z"},
		"c": {},
	}
	assert.Equal(t, []string{"a", "b", "c"}, sets.Names())

	names, members := sets.resolve([]string{"z", "y", "x"})
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, [][]int{{0}, {2, 1}, {}}, members)
}
