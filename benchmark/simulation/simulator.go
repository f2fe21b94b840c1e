// Package simulation generates expression data with planted gene sets and
// runs the engine over it.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/discochess/gsea"
)

// Class labels of the simulated phenotype.
const (
	Case    = "case"
	Control = "control"
)

// Truth is the planted state of a gene set.
type Truth int8

const (
	Null Truth = iota
	Up
	Down
)

func (t Truth) String() string {
	switch t {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "null"
	}
}

// Scenario describes a simulated experiment.
type Scenario struct {
	Genes           int
	SamplesPerClass int
	SetSize         int
	// UpSets and DownSets are shifted by Effect in the case samples.
	UpSets   int
	DownSets int
	// NullSets are drawn from genes outside every planted set.
	NullSets int
	// Effect is the mean shift in units of the noise standard deviation.
	Effect float64
	Seed   uint64
}

// DefaultScenario returns a scenario small enough to run in seconds.
func DefaultScenario() Scenario {
	return Scenario{
		Genes:           2000,
		SamplesPerClass: 10,
		SetSize:         25,
		UpSets:          5,
		DownSets:        5,
		NullSets:        40,
		Effect:          1.0,
		Seed:            1,
	}
}

// Validate checks that the planted sets fit in the gene universe.
func (s Scenario) Validate() error {
	switch {
	case s.Genes < 1 || s.SetSize < 1:
		return errors.New("simulation: genes and set size must be positive")
	case s.SamplesPerClass < 2:
		return errors.New("simulation: need at least 2 samples per class")
	case s.UpSets < 0 || s.DownSets < 0 || s.NullSets < 0:
		return errors.New("simulation: set counts must not be negative")
	}
	planted := s.SetSize * (s.UpSets + s.DownSets)
	if planted > s.Genes {
		return fmt.Errorf("simulation: %d planted genes exceed %d genes", planted, s.Genes)
	}
	if s.Genes-planted < s.SetSize && s.NullSets > 0 {
		return fmt.Errorf("simulation: %d genes leave no room for null sets of size %d", s.Genes, s.SetSize)
	}
	return nil
}

// Dataset is one simulated experiment.
type Dataset struct {
	Expression *gsea.Expression
	Phenotype  gsea.Phenotype
	Sets       gsea.GeneSets
	Truth      map[string]Truth
}

// Generate draws a dataset. Equal scenarios give equal datasets.
func Generate(s Scenario) (*Dataset, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(s.Seed, 0x9e3779b97f4a7c15))

	genes := make([]string, s.Genes)
	for i := range genes {
		genes[i] = fmt.Sprintf("G%05d", i)
	}
	n := 2 * s.SamplesPerClass
	samples := make([]string, n)
	labels := make([]string, n)
	for j := range samples {
		if j < s.SamplesPerClass {
			samples[j], labels[j] = fmt.Sprintf("case_%02d", j), Case
		} else {
			samples[j], labels[j] = fmt.Sprintf("control_%02d", j-s.SamplesPerClass), Control
		}
	}

	shift := make([]float64, s.Genes)
	sets := make(gsea.GeneSets)
	truth := make(map[string]Truth)
	perm := rng.Perm(s.Genes)
	next := 0
	plant := func(name string, t Truth, sign float64) {
		members := make([]string, s.SetSize)
		for k := range members {
			g := perm[next]
			next++
			members[k] = genes[g]
			shift[g] = sign * s.Effect
		}
		sets[name] = members
		truth[name] = t
	}
	for i := 0; i < s.UpSets; i++ {
		plant(fmt.Sprintf("UP_%02d", i), Up, 1)
	}
	for i := 0; i < s.DownSets; i++ {
		plant(fmt.Sprintf("DOWN_%02d", i), Down, -1)
	}

	pool := perm[next:]
	for i := 0; i < s.NullSets; i++ {
		members := make([]string, s.SetSize)
		for k, p := range rng.Perm(len(pool))[:s.SetSize] {
			members[k] = genes[pool[p]]
		}
		name := fmt.Sprintf("NULL_%03d", i)
		sets[name] = members
		truth[name] = Null
	}

	values := mat.NewDense(s.Genes, n, nil)
	for i := 0; i < s.Genes; i++ {
		for j := 0; j < n; j++ {
			v := noise(rng)
			if j < s.SamplesPerClass {
				v += shift[i]
			}
			values.Set(i, j, v)
		}
	}

	expr, err := gsea.NewExpression(genes, samples, values)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Expression: expr,
		Phenotype:  gsea.Phenotype{Labels: labels, Positive: Case, Negative: Control},
		Sets:       sets,
		Truth:      truth,
	}, nil
}

// noise draws a standard normal value by inversion, so the stream depends
// only on rng.
func noise(rng *rand.Rand) float64 {
	u := (float64(rng.Uint64()>>11) + 0.5) / (1 << 53)
	return distuv.UnitNormal.Quantile(u)
}

// Simulator runs the engine over simulated datasets.
type Simulator struct {
	engine *gsea.Engine
	config gsea.Config
}

// NewSimulator creates a Simulator that analyses every dataset with cfg.
func NewSimulator(engine *gsea.Engine, cfg gsea.Config) *Simulator {
	return &Simulator{engine: engine, config: cfg}
}

// Simulate runs replicates datasets of the scenario, replicate i using seed
// s.Seed+i, and returns every gene set outcome.
func (sim *Simulator) Simulate(ctx context.Context, s Scenario, replicates int) ([]Outcome, error) {
	var outcomes []Outcome
	for i := 0; i < replicates; i++ {
		rs := s
		rs.Seed = s.Seed + uint64(i)
		ds, err := Generate(rs)
		if err != nil {
			return nil, err
		}
		report, err := sim.engine.RunGSEA(ctx, gsea.NewSource(int64(rs.Seed)), ds.Expression, ds.Phenotype, ds.Sets, sim.config)
		if err != nil {
			return nil, fmt.Errorf("replicate %d: %w", i, err)
		}
		outcomes = append(outcomes, Outcomes(report, ds.Truth, i)...)
	}
	return outcomes, nil
}
