package stats

import "testing"

func TestHelp(t *testing.T) {
	if got := Help(MetricRuns); got == MetricRuns {
		t.Errorf("Help(%q) returned the name, want a description", MetricRuns)
	}
	if got := Help("custom_metric"); got != "custom_metric" {
		t.Errorf("Help(custom_metric) = %q, want the name", got)
	}
}

func TestNoop(t *testing.T) {
	var c Collector = NewNoop()
	c.IncCounter(MetricRuns, 1)
	c.SetGauge(MetricCacheSize, 3)
	c.ObserveHistogram(MetricRunSeconds, 0.5)
}
