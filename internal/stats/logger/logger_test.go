package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/discochess/gsea/internal/stats"
)

func TestCollector(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core))

	c.IncCounter(stats.MetricRuns, 2)
	c.SetGauge(stats.MetricCacheSize, 7)
	c.ObserveHistogram(stats.MetricRunSeconds, 1.5)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("logged %d entries, want 3", len(entries))
	}

	wantKinds := []string{"counter", "gauge", "histogram"}
	for i, e := range entries {
		if e.Message != wantKinds[i] {
			t.Errorf("entry %d message = %q, want %q", i, e.Message, wantKinds[i])
		}
		if e.LoggerName != "stats" {
			t.Errorf("entry %d logger = %q, want stats", i, e.LoggerName)
		}
	}
	if got := entries[0].ContextMap()["metric"]; got != stats.MetricRuns {
		t.Errorf("metric field = %v, want %s", got, stats.MetricRuns)
	}
}

func TestCollector_InfoLevelDropsDebug(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	c := New(zap.New(core))
	c.IncCounter(stats.MetricRuns, 1)
	if logs.Len() != 0 {
		t.Errorf("logged %d entries at info level, want 0", logs.Len())
	}
}

func TestNew_NilLogger(t *testing.T) {
	c := New(nil)
	c.IncCounter(stats.MetricRuns, 1)
}
