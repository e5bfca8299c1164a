package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsAndSizes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Operation("materials", "create", "ok")
	m.Operation("materials", "create", "ok")
	m.Operation("materials", "create", "error")
	m.Size("materials", 5, 2)

	if got := testutil.ToFloat64(m.ops.WithLabelValues("materials", "create", "ok")); got != 2 {
		t.Errorf("expected 2 ok creates, got %v", got)
	}
	if got := testutil.ToFloat64(m.ops.WithLabelValues("materials", "create", "error")); got != 1 {
		t.Errorf("expected 1 failed create, got %v", got)
	}
	if got := testutil.ToFloat64(m.records.WithLabelValues("materials")); got != 5 {
		t.Errorf("expected 5 records, got %v", got)
	}
	if got := testutil.ToFloat64(m.pending.WithLabelValues("materials")); got != 2 {
		t.Errorf("expected 2 pending, got %v", got)
	}
}
