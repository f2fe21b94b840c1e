//go:build e2e

package gsea_test

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/discochess/gsea"
	"github.com/discochess/gsea/benchmark/analysis"
	"github.com/discochess/gsea/benchmark/simulation"
)

func TestE2E_PlantedSets(t *testing.T) {
	engine, err := gsea.New(gsea.WithWorkers(4))
	if err != nil {
		t.Fatal(err)
	}
	cfg := gsea.DefaultConfig()
	cfg.Permutations = 1000

	s := simulation.DefaultScenario()
	s.Effect = 1.5

	start := time.Now()
	outcomes, err := simulation.NewSimulator(engine, cfg).Simulate(context.Background(), s, 3)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	t.Logf("simulated %d gene sets in %v", len(outcomes), time.Since(start))

	c := analysis.Calibrate(outcomes, 0.05)
	t.Log(c.Summary())

	if c.Power < 0.9 {
		t.Errorf("Power = %.3f, want >= 0.9", c.Power)
	}
	if c.FalsePositiveRate > 0.2 {
		t.Errorf("FalsePositiveRate = %.3f, want <= 0.2", c.FalsePositiveRate)
	}
	if !c.Separation.Significant {
		t.Errorf("planted and null |NES| not separated (p=%.4f)", c.Separation.PValue)
	}
}

func TestE2E_BenchCommand(t *testing.T) {
	tmpDir := t.TempDir()
	out := filepath.Join(tmpDir, "report.md.zst")

	cmd := exec.Command("go", "run", "./cmd/gsea-bench", "run",
		"--genes", "500",
		"--replicates", "1",
		"--permutations", "200",
		"--format", "markdown",
		"--output", out,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("gsea-bench run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	data, err := io.ReadAll(dec)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"## Summary", "## Top Gene Sets", "UP_"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("report missing %q", want)
		}
	}
}
