// Package logger provides a stats collector that writes metrics to a zap logger.
package logger

import (
	"go.uber.org/zap"

	"github.com/discochess/gsea/internal/stats"
)

// Collector implements stats.Collector by logging each observation at debug level.
type Collector struct {
	logger *zap.Logger
}

var _ stats.Collector = (*Collector)(nil)

// New creates a new logger-based collector.
// If logger is nil, a no-op logger is used.
func New(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{logger: logger.Named("stats")}
}

// IncCounter logs a counter increment.
func (c *Collector) IncCounter(name string, delta int64) {
	c.emit("counter", name, zap.Int64("delta", delta))
}

// SetGauge logs a gauge value.
func (c *Collector) SetGauge(name string, value int64) {
	c.emit("gauge", name, zap.Int64("value", value))
}

// ObserveHistogram logs a histogram observation.
func (c *Collector) ObserveHistogram(name string, value float64) {
	c.emit("histogram", name, zap.Float64("value", value))
}

func (c *Collector) emit(kind, name string, field zap.Field) {
	if ce := c.logger.Check(zap.DebugLevel, kind); ce != nil {
		ce.Write(zap.String("metric", name), field)
	}
}
