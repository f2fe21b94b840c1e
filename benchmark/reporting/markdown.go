package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/discochess/gsea/benchmark/analysis"
	"github.com/discochess/gsea/benchmark/simulation"
)

// MarkdownReport generates benchmark reports in Markdown format.
type MarkdownReport struct {
	w io.Writer
}

// NewMarkdownReport creates a new Markdown report writer.
func NewMarkdownReport(w io.Writer) *MarkdownReport {
	return &MarkdownReport{w: w}
}

// WriteHeader writes the report header.
func (r *MarkdownReport) WriteHeader(title string) {
	fmt.Fprintf(r.w, "# %s\n\n", title)
	fmt.Fprintf(r.w, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
}

// WriteMethodology writes the methodology section.
func (r *MarkdownReport) WriteMethodology(b *Benchmark) {
	s := b.Scenario
	fmt.Fprintln(r.w, "## Methodology")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Genes:** %d\n", s.Genes)
	fmt.Fprintf(r.w, "- **Samples:** %d per class\n", s.SamplesPerClass)
	fmt.Fprintf(r.w, "- **Gene sets:** %d up, %d down, %d null, %d genes each\n", s.UpSets, s.DownSets, s.NullSets, s.SetSize)
	fmt.Fprintf(r.w, "- **Planted effect:** %.2f standard deviations\n", s.Effect)
	fmt.Fprintf(r.w, "- **Ranking metric:** %s\n", b.Config.Method)
	fmt.Fprintf(r.w, "- **Permutations:** %d (%s)\n", b.Config.Permutations, b.Config.PermutationType)
	fmt.Fprintf(r.w, "- **Replicates:** %d\n", b.Replicates)
	fmt.Fprintln(r.w, "- **Statistical tests:** Kolmogorov-Smirnov distance of null p-values, Mann-Whitney U on |NES|, Cohen's d")
	fmt.Fprintln(r.w)
}

// WriteSummaryTable writes the calibration table.
func (r *MarkdownReport) WriteSummaryTable(c *analysis.Calibration) {
	fmt.Fprintln(r.w, "## Summary")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Metric | Value |")
	fmt.Fprintln(r.w, "|--------|-------|")
	fmt.Fprintf(r.w, "| Planted sets | %d |\n", c.PlantedSets)
	fmt.Fprintf(r.w, "| Null sets | %d |\n", c.NullSets)
	fmt.Fprintf(r.w, "| Null p-value mean | %.3f |\n", c.NullPValues.Mean)
	fmt.Fprintf(r.w, "| Null p-value KS distance | %.3f |\n", c.Uniformity)
	fmt.Fprintf(r.w, "| False positive rate (p < %.2f) | %.3f |\n", c.Alpha, c.FalsePositiveRate)
	fmt.Fprintf(r.w, "| False discoveries (FDR <= %.2f) | %.3f |\n", c.Alpha, c.FalseDiscoveries)
	fmt.Fprintf(r.w, "| Power (FDR <= %.2f) | %.3f |\n", c.Alpha, c.Power)
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "### Separation")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Mann-Whitney U:** %.2f (z=%.2f, p=%.4f)\n",
		c.Separation.U, c.Separation.Z, c.Separation.PValue)
	fmt.Fprintf(r.w, "- **Effect size (Cohen's d):** %.2f (%s)\n",
		c.EffectSize.CohensD, c.EffectSize.Interpretation)
	fmt.Fprintln(r.w)
}

// WriteTopSets writes the n most significant gene sets.
func (r *MarkdownReport) WriteTopSets(b *Benchmark, n int) {
	fmt.Fprintln(r.w, "## Top Gene Sets")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Term | Replicate | Truth | ES | NES | p | FDR | Leading edge |")
	fmt.Fprintln(r.w, "|------|-----------|-------|----|-----|---|-----|--------------|")
	for _, o := range b.Top(n) {
		res := o.Result
		fmt.Fprintf(r.w, "| %s | %d | %s | %.3f | %.3f | %.4f | %.4f | %d |\n",
			res.Term, o.Replicate, o.Truth, res.ES, res.NES, res.PValue, res.FDR, len(res.LeadingEdge()))
	}
	fmt.Fprintln(r.w)
}

// WriteDistributionChart writes an ASCII histogram of values in [0, 1].
func (r *MarkdownReport) WriteDistributionChart(name string, data []float64) {
	fmt.Fprintf(r.w, "### %s Distribution\n\n", name)
	fmt.Fprintln(r.w, "```")

	hist := makeHistogram(data, 10)
	maxCount := 0
	for _, count := range hist {
		if count > maxCount {
			maxCount = count
		}
	}

	width := 40
	for i, count := range hist {
		barLen := 0
		if maxCount > 0 {
			barLen = count * width / maxCount
		}
		bar := strings.Repeat("█", barLen)
		fmt.Fprintf(r.w, "%.1f-%.1f │ %s %d\n", float64(i)/10, float64(i+1)/10, bar, count)
	}

	fmt.Fprintln(r.w, "```")
	fmt.Fprintln(r.w)
}

// makeHistogram buckets values in [0, 1]. Values outside are clamped.
func makeHistogram(data []float64, buckets int) []int {
	hist := make([]int, buckets)
	for _, v := range data {
		bucket := int(v * float64(buckets))
		if bucket >= buckets {
			bucket = buckets - 1
		}
		if bucket < 0 {
			bucket = 0
		}
		hist[bucket]++
	}
	return hist
}

// WriteFooter writes the report footer.
func (r *MarkdownReport) WriteFooter() {
	fmt.Fprintln(r.w, "---")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "*Report generated by gsea-bench*")
}

// WriteMarkdown writes a complete Markdown report.
func WriteMarkdown(w io.Writer, b *Benchmark) error {
	report := NewMarkdownReport(w)
	report.WriteHeader("GSEA Calibration Benchmark")
	report.WriteMethodology(b)
	report.WriteSummaryTable(b.Calibration)
	_, null := simulation.Split(b.Outcomes)
	report.WriteDistributionChart("Null p-value", simulation.PValues(null))
	report.WriteTopSets(b, 10)
	report.WriteFooter()
	return nil
}
