package search

import (
	"math"
	"testing"
)

func TestSorted_Counts(t *testing.T) {
	s := NewSorted([]float64{0.5, -1, 2, 0, -1, math.NaN(), 2, 3})

	if len(s) != 7 {
		t.Fatalf("NewSorted() kept %d values, want 7", len(s))
	}

	tests := []struct {
		name    string
		v       float64
		atLeast int
		below   int
		atMost  int
		above   int
	}{
		{"below all", -5, 7, 0, 0, 7},
		{"duplicate negative", -1, 7, 0, 2, 5},
		{"zero", 0, 5, 2, 3, 4},
		{"between", 1, 3, 4, 4, 3},
		{"duplicate positive", 2, 3, 4, 6, 1},
		{"max", 3, 1, 6, 7, 0},
		{"above all", 10, 0, 7, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.AtLeast(tt.v); got != tt.atLeast {
				t.Errorf("AtLeast(%v) = %d, want %d", tt.v, got, tt.atLeast)
			}
			if got := s.Below(tt.v); got != tt.below {
				t.Errorf("Below(%v) = %d, want %d", tt.v, got, tt.below)
			}
			if got := s.AtMost(tt.v); got != tt.atMost {
				t.Errorf("AtMost(%v) = %d, want %d", tt.v, got, tt.atMost)
			}
			if got := s.Above(tt.v); got != tt.above {
				t.Errorf("Above(%v) = %d, want %d", tt.v, got, tt.above)
			}
		})
	}
}

func TestSorted_Empty(t *testing.T) {
	s := NewSorted(nil)
	if s.AtLeast(0) != 0 || s.Below(0) != 0 || s.AtMost(0) != 0 || s.Above(0) != 0 {
		t.Error("empty sample should count zero everywhere")
	}
}

func TestNewSorted_DoesNotModifyInput(t *testing.T) {
	in := []float64{3, 1, 2}
	NewSorted(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input modified: %v", in)
	}
}
