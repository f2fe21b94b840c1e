// Package promgseafx provides an fx module for a gsea.Engine that exports
// its metrics to Prometheus.
package promgseafx

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/gsea/fx/gseafx"
	"github.com/discochess/gsea/internal/stats"
	promstats "github.com/discochess/gsea/internal/stats/prometheus"
)

// Module provides a *gsea.Engine and the stats.Collector behind it.
// Requires a *zap.Logger. A prometheus.Registerer and a gseafx.Config are
// optional; without a registerer the default one is used.
var Module = fx.Module("promgsea",
	fx.Provide(
		newStatsCollector,
		gseafx.NewEngine,
	),
)

// Params holds dependencies for the collector.
type Params struct {
	fx.In

	Registerer prometheus.Registerer `optional:"true"`
	Logger     *zap.Logger
}

func newStatsCollector(p Params) stats.Collector {
	p.Logger.Debug("exporting gsea metrics to prometheus",
		zap.Bool("defaultRegisterer", p.Registerer == nil),
	)
	return promstats.New(p.Registerer)
}

