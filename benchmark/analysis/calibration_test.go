package analysis

import (
	"strings"
	"testing"

	"github.com/discochess/gsea"
	"github.com/discochess/gsea/benchmark/simulation"
)

func outcome(truth simulation.Truth, nes, p, fdr float64) simulation.Outcome {
	return simulation.Outcome{Truth: truth, Result: gsea.GeneSetResult{NES: nes, PValue: p, FDR: fdr}}
}

func TestCalibrate(t *testing.T) {
	outcomes := []simulation.Outcome{
		outcome(simulation.Up, 2.5, 0.001, 0.01),
		outcome(simulation.Up, 2.1, 0.002, 0.02),
		outcome(simulation.Down, -2.2, 0.001, 0.01),
		outcome(simulation.Down, 0.4, 0.6, 0.9),
		outcome(simulation.Null, 0.5, 0.2, 0.8),
		outcome(simulation.Null, -0.7, 0.4, 0.9),
		outcome(simulation.Null, 1.9, 0.01, 0.04),
		outcome(simulation.Null, -0.3, 0.8, 1),
	}

	c := Calibrate(outcomes, 0.05)

	if c.PlantedSets != 4 || c.NullSets != 4 {
		t.Errorf("sets = %d planted, %d null, want 4 and 4", c.PlantedSets, c.NullSets)
	}
	if c.Power != 0.75 {
		t.Errorf("Power = %f, want 0.75", c.Power)
	}
	if c.FalsePositiveRate != 0.25 {
		t.Errorf("FalsePositiveRate = %f, want 0.25", c.FalsePositiveRate)
	}
	if c.FalseDiscoveries != 0.25 {
		t.Errorf("FalseDiscoveries = %f, want 0.25", c.FalseDiscoveries)
	}
	if c.NullPValues.N != 4 {
		t.Errorf("NullPValues.N = %d, want 4", c.NullPValues.N)
	}
	if c.EffectSize.CohensD <= 0 {
		t.Errorf("CohensD = %f, want planted |NES| above null", c.EffectSize.CohensD)
	}
	if !strings.Contains(c.Summary(), "Power") {
		t.Errorf("Summary() missing power line:\n%s", c.Summary())
	}
}

func TestCalibrate_Empty(t *testing.T) {
	c := Calibrate(nil, 0.05)
	if c.Power != 0 || c.FalsePositiveRate != 0 {
		t.Errorf("empty calibration = %+v", c)
	}
	if c.Separation.Significant {
		t.Error("empty calibration reported significant separation")
	}
}
