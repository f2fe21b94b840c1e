// Package gsea computes Gene Set Enrichment Analysis statistics: the
// weighted running-sum enrichment score of each gene set against a ranked
// gene list, its permutation null distribution, and the normalized score,
// nominal p-value and FDR q-value derived from it.
//
// Example usage:
//
//	engine, err := gsea.New(gsea.WithWorkers(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := gsea.DefaultConfig()
//	report, err := engine.RunPrerank(ctx, gsea.NewSource(42), ranking, sets, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range report.Significant(0.25) {
//	    fmt.Printf("%s NES=%.2f q=%.3f\n", r.Term, r.NES, r.FDR)
//	}
package gsea

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/discochess/gsea/internal/enrich"
	"github.com/discochess/gsea/internal/rank"
	"github.com/discochess/gsea/internal/rank/lru"
	"github.com/discochess/gsea/internal/rank/memory"
	"github.com/discochess/gsea/internal/seed"
	"github.com/discochess/gsea/internal/significance"
	"github.com/discochess/gsea/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrInvalidParameter indicates unusable input or configuration. It is
	// reported before any computation starts.
	ErrInvalidParameter = errors.New("gsea: invalid parameter")

	// ErrDegenerateInput indicates input a statistic is undefined for. The
	// run recovers with a documented default; see Report.Err.
	ErrDegenerateInput = errors.New("gsea: degenerate input")

	// ErrNumericIndeterminate indicates a significance statistic with no
	// defined value. The run recovers with a documented default; see
	// Report.Err.
	ErrNumericIndeterminate = errors.New("gsea: numerically indeterminate")
)

// FDRNonInformative is the q-value of a gene set whose FDR cannot be
// estimated.
const FDRNonInformative = significance.FDRNonInformative

// Engine runs enrichment analyses.
// An Engine is safe for concurrent use by multiple goroutines.
type Engine struct {
	workers   int
	chunkSize int
	cacheSize int
	progress  ProgressFunc
	stats     stats.Collector
	logger    *zap.Logger
}

// New creates a new Engine with the given options.
// If no options are provided, sensible defaults are used.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.workers < 1 {
		return nil, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidParameter, cfg.workers)
	}
	if cfg.chunkSize < 1 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidParameter, cfg.chunkSize)
	}
	if cfg.cacheSize < 0 {
		return nil, fmt.Errorf("%w: ranking cache size must not be negative, got %d", ErrInvalidParameter, cfg.cacheSize)
	}
	if cfg.stats == nil {
		cfg.stats = stats.NewNoop()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	e := &Engine{
		workers:   cfg.workers,
		chunkSize: cfg.chunkSize,
		cacheSize: cfg.cacheSize,
		progress:  cfg.progress,
		stats:     cfg.stats,
		logger:    cfg.logger,
	}

	e.logger.Debug("engine initialized",
		zap.Int("workers", e.workers),
		zap.Int("chunkSize", e.chunkSize),
		zap.Int("rankingCacheSize", e.cacheSize),
	)

	return e, nil
}

// Input bundles the data of a run for Run.
type Input struct {
	Expression *Expression
	Phenotype  Phenotype
	Ranking    Ranking
	GeneSets   GeneSets
}

// Run dispatches on cfg.Mode. ModeGSEA reads Expression and Phenotype, the
// other modes read Ranking.
func (e *Engine) Run(ctx context.Context, src *Source, in Input, cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	switch cfg.Mode {
	case ModeGSEA:
		return e.RunGSEA(ctx, src, in.Expression, in.Phenotype, in.GeneSets, cfg)
	case ModePrerank:
		return e.RunPrerank(ctx, src, in.Ranking, in.GeneSets, cfg)
	case ModeSingleSample:
		return e.RunSingleSample(ctx, src, in.Ranking, in.GeneSets, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidParameter, cfg.Mode)
	}
}

// RunGSEA ranks the expression matrix by the two-class statistic
// cfg.Method and scores every gene set against that ranking. The null is
// built by shuffling class labels, or gene set membership when
// cfg.PermutationType is PermuteGeneSet.
func (e *Engine) RunGSEA(ctx context.Context, src *Source, expr *Expression, ph Phenotype, sets GeneSets, cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	cfg.Mode = ModeGSEA
	params, err := e.prepare(src, sets, cfg, enrich.Extremum)
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, fmt.Errorf("%w: nil expression", ErrInvalidParameter)
	}
	method, err := rank.ParseMethod(cfg.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if len(ph.Labels) != len(expr.Samples) {
		return nil, fmt.Errorf("%w: %d labels for %d samples", ErrInvalidParameter, len(ph.Labels), len(expr.Samples))
	}
	labeling, err := rank.NewLabeling(ph.Labels, ph.Positive, ph.Negative)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	names, members := sets.resolve(expr.Genes)
	start := time.Now()
	batch := e.batch(src.next(), cfg.Mode, start)

	var (
		scores   *enrich.Scores
		observed rank.Ranking
	)
	if cfg.PermutationType == PermuteGeneSet {
		observed = rank.Compute(expr.Values, labeling.Design(), method, cfg.Ascending)
		pos := enrich.NewPositions(observed.Order)
		hits := make([][]int, len(members))
		for i, set := range members {
			hits[i] = pos.Hits(set, nil)
		}
		scores, err = batch.Tag(ctx, observed.Values, hits, cfg.Permutations, params)
	} else {
		ranker := rank.NewCache(expr.Values, method, cfg.Ascending, e.rankingCache())
		scores, observed, err = batch.Phenotype(ctx, ranker, labeling, members, cfg.Permutations, params)
		if err == nil {
			s := ranker.Stats()
			e.logger.Debug("ranking cache",
				zap.Int64("hits", s.Hits),
				zap.Int64("misses", s.Misses),
				zap.Float64("hitRate", s.HitRate()),
			)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("scoring gene sets: %w", err)
	}

	ranked := Ranking{Genes: make([]string, observed.Len()), Values: observed.Values}
	for i, g := range observed.Order {
		ranked.Genes[i] = expr.Genes[g]
	}
	if observed.Degenerate > 0 {
		e.logger.Debug("undefined ranking metric set to zero",
			zap.String("method", string(method)),
			zap.Int("genes", observed.Degenerate),
		)
	}
	return e.report(cfg, names, scores, ranked, observed.Degenerate, start), nil
}

// RunPrerank scores every gene set against a caller-supplied ranking. The
// ranking is sorted by value first; the null shuffles gene set membership.
func (e *Engine) RunPrerank(ctx context.Context, src *Source, r Ranking, sets GeneSets, cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	cfg.Mode = ModePrerank
	cfg.PermutationType = PermuteGeneSet
	return e.runRanked(ctx, src, r, sets, cfg, enrich.Extremum)
}

// RunSingleSample scores every gene set against one sample's ranking by
// summing the running sum, optionally scaled by the ranking length. With
// permutations, the null shuffles gene set membership.
func (e *Engine) RunSingleSample(ctx context.Context, src *Source, r Ranking, sets GeneSets, cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	cfg.Mode = ModeSingleSample
	cfg.PermutationType = PermuteGeneSet
	return e.runRanked(ctx, src, r, sets, cfg, enrich.Sum)
}

// RunSamples runs single-sample scoring for every sample of expr, in
// sample order. Each sample draws from its own source derived from src.
func (e *Engine) RunSamples(ctx context.Context, src *Source, expr *Expression, sets GeneSets, cfg Config) ([]*Report, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}
	if expr == nil {
		return nil, fmt.Errorf("%w: nil expression", ErrInvalidParameter)
	}

	base := src.next()
	reports := make([]*Report, len(expr.Samples))
	for j, sample := range expr.Samples {
		r, err := e.RunSingleSample(ctx, derive(base, seed.ScopeSample, j), expr.Sample(j), sets, cfg)
		if err != nil {
			return nil, fmt.Errorf("sample %q: %w", sample, err)
		}
		reports[j] = r
	}
	return reports, nil
}

func (e *Engine) runRanked(ctx context.Context, src *Source, r Ranking, sets GeneSets, cfg Config, agg enrich.Aggregation) (*Report, error) {
	params, err := e.prepare(src, sets, cfg, agg)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	ranked := r.sorted(cfg.Ascending)
	names, hits := sets.resolve(ranked.Genes)
	for _, h := range hits {
		sort.Ints(h)
	}

	start := time.Now()
	scores, err := e.batch(src.next(), cfg.Mode, start).Tag(ctx, ranked.Values, hits, cfg.Permutations, params)
	if err != nil {
		return nil, fmt.Errorf("scoring gene sets: %w", err)
	}
	return e.report(cfg, names, scores, ranked, 0, start), nil
}

// prepare validates what every mode shares and returns the score parameters.
func (e *Engine) prepare(src *Source, sets GeneSets, cfg Config, agg enrich.Aggregation) (enrich.Params, error) {
	if err := cfg.Validate(); err != nil {
		return enrich.Params{}, err
	}
	if src == nil {
		return enrich.Params{}, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}
	if len(sets) == 0 {
		return enrich.Params{}, fmt.Errorf("%w: no gene sets", ErrInvalidParameter)
	}

	params := enrich.Params{Exponent: cfg.WeightedScoreType, Aggregation: agg, Scale: cfg.Scale}
	if err := params.Validate(); err != nil {
		return enrich.Params{}, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return params, nil
}

func (e *Engine) batch(base uint64, mode Mode, start time.Time) enrich.Batch {
	b := enrich.Batch{Seed: base, Workers: e.workers, ChunkSize: e.chunkSize}
	if e.progress != nil {
		b.Progress = func(done, total int) {
			e.progress(Progress{Mode: mode, UnitsDone: done, UnitsTotal: total, StartTime: start})
		}
	}
	return b
}

// rankingCache returns a fresh per-run backend, or nil when caching is off.
func (e *Engine) rankingCache() rank.Backend {
	if e.cacheSize == 0 {
		return nil
	}
	strategy, err := lru.New(e.cacheSize)
	if err != nil {
		e.logger.Warn("ranking cache disabled", zap.Error(err))
		return nil
	}
	return memory.New(strategy, e.stats)
}

func (e *Engine) report(cfg Config, names []string, scores *enrich.Scores, ranked Ranking, degenerate int, start time.Time) *Report {
	sig := significance.Compute(scores.Observed, scores.Null)

	rep := &Report{
		RunID:           uuid.New(),
		Mode:            cfg.Mode,
		PermutationType: cfg.PermutationType,
		Permutations:    cfg.Permutations,
		Ranking:         ranked,
		DegenerateGenes: degenerate,
		Results:         make([]GeneSetResult, len(names)),
	}

	var fallbacks int64
	for i, name := range names {
		res := GeneSetResult{
			Term:       name,
			ES:         sig[i].ES,
			NES:        sig[i].NES,
			PValue:     sig[i].PValue,
			FDR:        sig[i].FDR,
			Null:       append([]float64(nil), scores.NullRow(i)...),
			HitIndices: scores.Hits[i],
			RES:        scores.RES[i],
			Fallbacks:  fallbackOf(scores.Status[i], sig[i].Flags),
		}
		if res.Fallbacks != 0 {
			fallbacks++
		}
		rep.Results[i] = res
	}

	elapsed := time.Since(start)
	e.stats.IncCounter(stats.MetricRuns, 1)
	e.stats.IncCounter(stats.MetricGeneSets, int64(len(names)))
	e.stats.IncCounter(stats.MetricPermutations, int64(cfg.Permutations))
	e.stats.IncCounter(stats.MetricFallbacks, fallbacks)
	e.stats.ObserveHistogram(stats.MetricRunSeconds, elapsed.Seconds())

	e.logger.Debug("run complete",
		zap.String("runID", rep.RunID.String()),
		zap.String("mode", string(cfg.Mode)),
		zap.String("permutationType", string(cfg.PermutationType)),
		zap.Int("geneSets", len(names)),
		zap.Int("genes", ranked.Len()),
		zap.Int("permutations", cfg.Permutations),
		zap.Int64("fallbacks", fallbacks),
		zap.Duration("elapsed", elapsed),
	)
	return rep
}

func fallbackOf(st enrich.Status, flags significance.Flag) Fallback {
	var f Fallback
	switch st {
	case enrich.EmptyOverlap:
		f |= FallbackEmptyOverlap
	case enrich.ZeroWeight:
		f |= FallbackZeroWeight
	}
	if flags.Has(significance.PValueUndefined) {
		f |= FallbackPValue
	}
	if flags.Has(significance.NESUndefined) {
		f |= FallbackNES
	}
	if flags.Has(significance.FDRUndefined) {
		f |= FallbackFDR
	}
	return f
}
