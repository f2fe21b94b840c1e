package gsea

import (
	"fmt"
	"io"
	"time"
)

// Progress reports how far the permutation work of a run has come.
type Progress struct {
	Mode Mode
	// UnitsDone and UnitsTotal count work units: gene sets when gene set
	// membership is permuted, replicate chunks otherwise.
	UnitsDone  int
	UnitsTotal int
	StartTime  time.Time
}

// Fraction returns completion in [0, 1].
func (p Progress) Fraction() float64 {
	if p.UnitsTotal == 0 {
		return 1
	}
	return float64(p.UnitsDone) / float64(p.UnitsTotal)
}

// ProgressFunc is called with progress updates. Calls for one run are
// serialized.
type ProgressFunc func(Progress)

// FormatDuration formats duration as human-readable string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// WriterProgress returns a ProgressFunc that redraws a single status line on w.
func WriterProgress(w io.Writer) ProgressFunc {
	return func(p Progress) {
		fmt.Fprintf(w, "\r[%s] %d / %d units (%.0f%%, %s)",
			p.Mode, p.UnitsDone, p.UnitsTotal, p.Fraction()*100, FormatDuration(time.Since(p.StartTime)))
		if p.UnitsDone == p.UnitsTotal {
			fmt.Fprintln(w)
		}
	}
}
