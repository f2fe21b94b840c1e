package analysis

import (
	"fmt"

	"github.com/discochess/gsea/benchmark/simulation"
)

// Calibration summarizes how the engine's statistics behave on simulated
// data with known truth.
type Calibration struct {
	Alpha       float64
	PlantedSets int
	NullSets    int

	// NullPValues describes the nominal p-values of null sets. Calibrated
	// p-values are uniform, with mean near 0.5.
	NullPValues *DescriptiveStats
	// Uniformity is the Kolmogorov-Smirnov distance of the null p-values
	// from the uniform distribution.
	Uniformity float64
	// FalsePositiveRate is the share of null sets with p < Alpha.
	FalsePositiveRate float64
	// FalseDiscoveries is the share of null sets called at FDR <= Alpha.
	FalseDiscoveries float64
	// Power is the share of planted sets called at FDR <= Alpha with the
	// planted direction.
	Power float64

	// Separation compares |NES| of planted and null sets.
	Separation *MannWhitneyResult
	EffectSize *EffectSize
}

// Calibrate evaluates outcomes at significance level alpha.
func Calibrate(outcomes []simulation.Outcome, alpha float64) *Calibration {
	planted, null := simulation.Split(outcomes)
	nullP := simulation.PValues(null)

	c := &Calibration{
		Alpha:             alpha,
		PlantedSets:       len(planted),
		NullSets:          len(null),
		NullPValues:       Describe(nullP),
		Uniformity:        Uniformity(nullP),
		FalsePositiveRate: FractionBelow(nullP, alpha),
		FalseDiscoveries:  detectedFraction(null, alpha),
		Power:             detectedFraction(planted, alpha),
	}

	plantedNES := simulation.AbsNES(planted)
	nullNES := simulation.AbsNES(null)
	c.Separation = MannWhitneyU(plantedNES, nullNES)
	c.EffectSize = ComputeEffectSize(plantedNES, nullNES)
	return c
}

func detectedFraction(outcomes []simulation.Outcome, maxFDR float64) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	var n int
	for _, o := range outcomes {
		if o.Detected(maxFDR) {
			n++
		}
	}
	return float64(n) / float64(len(outcomes))
}

// Summary returns a human-readable summary of the calibration.
func (c *Calibration) Summary() string {
	sep := "not statistically significant"
	if c.Separation.Significant {
		sep = fmt.Sprintf("statistically significant (p=%.4f)", c.Separation.PValue)
	}
	return fmt.Sprintf(
		"Planted sets: %d, null sets: %d, alpha: %.2f\n"+
			"  Null p-values: mean=%.3f, median=%.3f, KS distance=%.3f\n"+
			"  False positive rate (p < alpha): %.3f\n"+
			"  False discoveries (FDR <= alpha): %.3f\n"+
			"  Power (FDR <= alpha, correct sign): %.3f\n"+
			"  |NES| separation: %.2f (%s), %s",
		c.PlantedSets, c.NullSets, c.Alpha,
		c.NullPValues.Mean, c.NullPValues.Median, c.Uniformity,
		c.FalsePositiveRate,
		c.FalseDiscoveries,
		c.Power,
		c.EffectSize.CohensD, c.EffectSize.Interpretation, sep,
	)
}
