package seed

import (
	"testing"
)

func TestDerive_Consistency(t *testing.T) {
	a := Derive(42, ScopeGeneSet, 3)
	b := Derive(42, ScopeGeneSet, 3)
	if a != b {
		t.Errorf("Derive() not consistent: got %d and %d", a, b)
	}
}

func TestDerive_Independence(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
	}{
		{"different index", Derive(42, ScopeGeneSet, 0), Derive(42, ScopeGeneSet, 1)},
		{"different scope", Derive(42, ScopeGeneSet, 0), Derive(42, ScopePhenotype, 0)},
		{"different base", Derive(42, ScopeGeneSet, 0), Derive(43, ScopeGeneSet, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a == tt.b {
				t.Errorf("Derive() collision: %d", tt.a)
			}
		})
	}
}

func TestFor_Replay(t *testing.T) {
	r1 := For(7, ScopePhenotype, 2)
	r2 := For(7, ScopePhenotype, 2)
	for i := 0; i < 100; i++ {
		if x, y := r1.Uint64(), r2.Uint64(); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}
