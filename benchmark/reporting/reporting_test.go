package reporting

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/discochess/gsea"
	"github.com/discochess/gsea/benchmark/analysis"
	"github.com/discochess/gsea/benchmark/simulation"
)

func fixture() *Benchmark {
	outcomes := []simulation.Outcome{
		{Truth: simulation.Null, Result: gsea.GeneSetResult{Term: "NULL_000", NES: 0.4, PValue: 0.55, FDR: 0.9}},
		{Truth: simulation.Up, Result: gsea.GeneSetResult{Term: "UP_00", NES: 2.4, PValue: 0.001, FDR: 0.01}},
		{Truth: simulation.Down, Result: gsea.GeneSetResult{Term: "DOWN_00", NES: -2.8, PValue: 0.001, FDR: 0.01}},
		{Truth: simulation.Null, Result: gsea.GeneSetResult{Term: "NULL_001", NES: -0.2, PValue: 1, FDR: 1}},
	}
	return &Benchmark{
		Scenario:    simulation.DefaultScenario(),
		Config:      gsea.DefaultConfig(),
		Replicates:  1,
		Elapsed:     90 * time.Second,
		Outcomes:    outcomes,
		Calibration: analysis.Calibrate(outcomes, 0.05),
	}
}

func TestBenchmark_Top(t *testing.T) {
	top := fixture().Top(2)
	if len(top) != 2 {
		t.Fatalf("len(Top(2)) = %d, want 2", len(top))
	}
	if top[0].Result.Term != "DOWN_00" || top[1].Result.Term != "UP_00" {
		t.Errorf("Top(2) = %s, %s, want DOWN_00, UP_00", top[0].Result.Term, top[1].Result.Term)
	}
	if n := len(fixture().Top(10)); n != 4 {
		t.Errorf("len(Top(10)) = %d, want 4", n)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, fixture()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"GSEA Calibration Benchmark", "Replicates: 1, elapsed: 1m 30s", "UP_00", "truth=down"} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, fixture()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"# GSEA Calibration Benchmark", "## Methodology", "| Power (FDR <= 0.05) | 1.000 |", "### Null p-value Distribution", "| DOWN_00 | 0 | down |", "gsea-bench"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown report missing %q:\n%s", want, out)
		}
	}
}

func TestMakeHistogram(t *testing.T) {
	hist := makeHistogram([]float64{0, 0.05, 0.15, 0.99, 1, -0.1}, 10)
	want := []int{3, 1, 0, 0, 0, 0, 0, 0, 0, 2}
	for i := range want {
		if hist[i] != want[i] {
			t.Fatalf("makeHistogram() = %v, want %v", hist, want)
		}
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, fixture()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<html", "<title>GSEA Calibration Benchmark</title>", "<h1", "<table>", "UP_00"} {
		if !strings.Contains(out, want) {
			t.Errorf("html report missing %q", want)
		}
	}
}
