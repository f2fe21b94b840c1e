// Package reporting provides report generation for benchmark results.
package reporting

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/discochess/gsea"
	"github.com/discochess/gsea/benchmark/analysis"
	"github.com/discochess/gsea/benchmark/simulation"
)

// Benchmark gathers everything a report describes.
type Benchmark struct {
	Scenario    simulation.Scenario
	Config      gsea.Config
	Replicates  int
	Elapsed     time.Duration
	Outcomes    []simulation.Outcome
	Calibration *analysis.Calibration
}

// Top returns up to n outcomes ordered by FDR, then by |NES| descending.
func (b *Benchmark) Top(n int) []simulation.Outcome {
	sorted := append([]simulation.Outcome(nil), b.Outcomes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Result, sorted[j].Result
		if ri.FDR != rj.FDR {
			return ri.FDR < rj.FDR
		}
		return abs(ri.NES) > abs(rj.NES)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// WriteText writes a plain text report.
func WriteText(w io.Writer, b *Benchmark) error {
	s := b.Scenario
	fmt.Fprintf(w, "GSEA Calibration Benchmark\n")
	fmt.Fprintf(w, "==========================\n\n")
	fmt.Fprintf(w, "Genes: %d\n", s.Genes)
	fmt.Fprintf(w, "Samples per class: %d\n", s.SamplesPerClass)
	fmt.Fprintf(w, "Sets: %d up, %d down, %d null (size %d)\n", s.UpSets, s.DownSets, s.NullSets, s.SetSize)
	fmt.Fprintf(w, "Effect: %.2f\n", s.Effect)
	fmt.Fprintf(w, "Method: %s, permutations: %d (%s)\n", b.Config.Method, b.Config.Permutations, b.Config.PermutationType)
	fmt.Fprintf(w, "Replicates: %d, elapsed: %s\n\n", b.Replicates, gsea.FormatDuration(b.Elapsed))

	fmt.Fprintf(w, "Calibration:\n")
	fmt.Fprintf(w, "------------\n\n")
	fmt.Fprintln(w, b.Calibration.Summary())
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Top gene sets:\n")
	fmt.Fprintf(w, "--------------\n\n")
	for _, o := range b.Top(10) {
		fmt.Fprintf(w, "  %-10s rep=%d truth=%-4s NES=%+.3f p=%.4f FDR=%.4f\n",
			o.Result.Term, o.Replicate, o.Truth, o.Result.NES, o.Result.PValue, o.Result.FDR)
	}
	_, err := fmt.Fprintln(w)
	return err
}
