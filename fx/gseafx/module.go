// Package gseafx provides an fx module for a gsea.Engine that reports its
// metrics through the application logger.
package gseafx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/gsea"
	"github.com/discochess/gsea/internal/stats"
	"github.com/discochess/gsea/internal/stats/logger"
)

// Config holds engine settings. Zero values keep the engine defaults.
type Config struct {
	Workers          int
	ChunkSize        int
	RankingCacheSize int
}

// Options converts the settings to engine options.
func (c Config) Options() []gsea.Option {
	var opts []gsea.Option
	if c.Workers > 0 {
		opts = append(opts, gsea.WithWorkers(c.Workers))
	}
	if c.ChunkSize > 0 {
		opts = append(opts, gsea.WithChunkSize(c.ChunkSize))
	}
	if c.RankingCacheSize > 0 {
		opts = append(opts, gsea.WithRankingCacheSize(c.RankingCacheSize))
	}
	return opts
}

// Module provides a *gsea.Engine.
// Requires a *zap.Logger to be provided. A Config is optional.
var Module = fx.Module("gsea",
	fx.Provide(
		newStatsCollector,
		NewEngine,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("gsea"))
}

// Params holds dependencies for creating the engine.
type Params struct {
	fx.In

	Config    Config `optional:"true"`
	Logger    *zap.Logger
	Collector stats.Collector
}

// Result holds the provided engine.
type Result struct {
	fx.Out

	Engine *gsea.Engine
}

// NewEngine builds the engine from its dependencies.
func NewEngine(p Params) (Result, error) {
	opts := append(p.Config.Options(),
		gsea.WithStats(p.Collector),
		gsea.WithLogger(p.Logger.Named("gsea")),
	)
	engine, err := gsea.New(opts...)
	if err != nil {
		return Result{}, err
	}
	return Result{Engine: engine}, nil
}
