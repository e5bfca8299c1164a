package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Spok95/empresa-pos/internal/optimistic"
)

// Metrics — счётчики и размеры хранилищ; реализует optimistic.Recorder.
type Metrics struct {
	ops     *prometheus.CounterVec
	records *prometheus.GaugeVec
	pending *prometheus.GaugeVec
}

var _ optimistic.Recorder = (*Metrics)(nil)

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ops: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_store_operations_total",
			Help: "Store operations by outcome",
		}, []string{"store", "op", "outcome"}),
		records: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pos_store_records",
			Help: "Records currently held by a store, pending ones included",
		}, []string{"store"}),
		pending: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pos_store_pending",
			Help: "Optimistic creates awaiting server acknowledgement",
		}, []string{"store"}),
	}
}

func (m *Metrics) Operation(store, op, outcome string) {
	m.ops.WithLabelValues(store, op, outcome).Inc()
}

func (m *Metrics) Size(store string, records, pending int) {
	m.records.WithLabelValues(store).Set(float64(records))
	m.pending.WithLabelValues(store).Set(float64(pending))
}
