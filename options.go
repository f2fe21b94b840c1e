package gsea

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/discochess/gsea/internal/enrich"
	"github.com/discochess/gsea/internal/stats"
)

// DefaultRankingCacheSize is the number of permuted rankings kept per run.
const DefaultRankingCacheSize = 1024

// Option configures an Engine.
type Option interface {
	apply(*options)
}

// options holds the engine configuration.
type options struct {
	workers   int
	chunkSize int
	cacheSize int
	progress  ProgressFunc
	stats     stats.Collector
	logger    *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		workers:   runtime.GOMAXPROCS(0),
		chunkSize: enrich.DefaultChunkSize,
		cacheSize: DefaultRankingCacheSize,
		stats:     stats.NewNoop(),
		logger:    zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithWorkers sets how many work units run concurrently.
// Default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return optionFunc(func(o *options) {
		o.workers = n
	})
}

// WithChunkSize sets the number of phenotype permutations per work unit.
// Results depend on the chunk size but never on the worker count.
func WithChunkSize(n int) Option {
	return optionFunc(func(o *options) {
		o.chunkSize = n
	})
}

// WithRankingCacheSize bounds the number of permuted rankings remembered
// within a run. Zero disables the cache.
func WithRankingCacheSize(n int) Option {
	return optionFunc(func(o *options) {
		o.cacheSize = n
	})
}

// WithProgress sets a callback invoked as permutation work completes.
func WithProgress(fn ProgressFunc) Option {
	return optionFunc(func(o *options) {
		o.progress = fn
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}
