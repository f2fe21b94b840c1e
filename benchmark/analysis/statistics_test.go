package analysis

import (
	"math"
	"testing"
)

func TestMannWhitneyU(t *testing.T) {
	tests := []struct {
		name       string
		sample1    []float64
		sample2    []float64
		wantSignif bool
	}{
		{
			name:       "identical samples",
			sample1:    []float64{1, 2, 3, 4, 5},
			sample2:    []float64{1, 2, 3, 4, 5},
			wantSignif: false,
		},
		{
			name:       "clearly different samples",
			sample1:    []float64{1, 2, 3, 4, 5},
			sample2:    []float64{10, 11, 12, 13, 14},
			wantSignif: true,
		},
		{
			name:       "highly overlapping samples",
			sample1:    []float64{3, 4, 5, 6, 7},
			sample2:    []float64{4, 5, 6, 7, 8},
			wantSignif: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MannWhitneyU(tt.sample1, tt.sample2)
			if result.Significant != tt.wantSignif {
				t.Errorf("Significant = %v, want %v (p=%f)", result.Significant, tt.wantSignif, result.PValue)
			}
		})
	}
}

func TestMannWhitneyU_Empty(t *testing.T) {
	result := MannWhitneyU([]float64{}, []float64{1, 2, 3})
	if result.U != 0 || result.PValue != 1 {
		t.Errorf("got U=%f p=%f, want 0 and 1 for empty sample", result.U, result.PValue)
	}
}

func TestEffectSize(t *testing.T) {
	tests := []struct {
		name       string
		sample1    []float64
		sample2    []float64
		wantInterp string
	}{
		{
			name:       "large effect",
			sample1:    []float64{1, 2, 3, 4, 5},
			sample2:    []float64{10, 11, 12, 13, 14},
			wantInterp: "large",
		},
		{
			name:       "negligible effect",
			sample1:    []float64{5, 5, 5, 5, 5},
			sample2:    []float64{5.1, 5, 4.9, 5, 5},
			wantInterp: "negligible",
		},
		{
			name:       "single value",
			sample1:    []float64{1},
			sample2:    []float64{2, 3},
			wantInterp: "undefined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeEffectSize(tt.sample1, tt.sample2)
			if result.Interpretation != tt.wantInterp {
				t.Errorf("Interpretation = %s, want %s (d=%f)", result.Interpretation, tt.wantInterp, result.CohensD)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	sample := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	stats := Describe(sample)

	if stats.N != 10 {
		t.Errorf("N = %d, want 10", stats.N)
	}
	if stats.Mean != 5.5 {
		t.Errorf("Mean = %f, want 5.5", stats.Mean)
	}
	if stats.Median != 5.5 {
		t.Errorf("Median = %f, want 5.5", stats.Median)
	}
	if stats.Min != 1 || stats.Max != 10 {
		t.Errorf("Min, Max = %f, %f, want 1, 10", stats.Min, stats.Max)
	}
	if stats.P25 != 3 || stats.P75 != 8 {
		t.Errorf("P25, P75 = %f, %f, want 3, 8", stats.P25, stats.P75)
	}
}

func TestDescribe_Empty(t *testing.T) {
	stats := Describe([]float64{})
	if stats.N != 0 {
		t.Errorf("N = %d, want 0", stats.N)
	}
}

func TestUniformity(t *testing.T) {
	uniform := make([]float64, 100)
	for i := range uniform {
		uniform[i] = (float64(i) + 0.5) / 100
	}
	if d := Uniformity(uniform); math.Abs(d-0.005) > 1e-12 {
		t.Errorf("Uniformity(grid) = %f, want 0.005", d)
	}

	skewed := []float64{0.01, 0.02, 0.03, 0.04}
	if d := Uniformity(skewed); d < 0.9 {
		t.Errorf("Uniformity(skewed) = %f, want >= 0.9", d)
	}

	if d := Uniformity(nil); d != 0 {
		t.Errorf("Uniformity(nil) = %f, want 0", d)
	}
}

func TestFractionBelow(t *testing.T) {
	if got := FractionBelow([]float64{0.01, 0.05, 0.2, 0.5}, 0.05); got != 0.25 {
		t.Errorf("FractionBelow() = %f, want 0.25", got)
	}
	if got := FractionBelow(nil, 0.05); got != 0 {
		t.Errorf("FractionBelow(nil) = %f, want 0", got)
	}
}
