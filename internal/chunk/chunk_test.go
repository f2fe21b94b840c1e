package chunk

import (
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		size      int
		wantCount int
		wantLast  int
	}{
		{"empty", 0, 10, 0, 0},
		{"exact", 100, 25, 4, 25},
		{"remainder", 101, 25, 5, 1},
		{"size larger than total", 10, 64, 1, 10},
		{"non-positive size", 10, 0, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges := Split(tt.total, tt.size)
			if len(ranges) != tt.wantCount {
				t.Fatalf("Split() returned %d ranges, want %d", len(ranges), tt.wantCount)
			}
			if tt.wantCount == 0 {
				return
			}
			if got := ranges[len(ranges)-1].Len(); got != tt.wantLast {
				t.Errorf("last range Len() = %d, want %d", got, tt.wantLast)
			}

			covered := 0
			for i, r := range ranges {
				if r.Index != i {
					t.Errorf("range %d has Index %d", i, r.Index)
				}
				if r.Start != covered {
					t.Errorf("range %d starts at %d, want %d", i, r.Start, covered)
				}
				covered = r.End
			}
			if covered != tt.total {
				t.Errorf("ranges cover %d replicates, want %d", covered, tt.total)
			}
		})
	}
}
