package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"crypto-price/internal/controller"
)

const namespace = "cryptoprice"

// Metrics tracks oracle fetch outcomes for a node_exporter textfile collector.
type Metrics struct {
	registry    *prometheus.Registry
	price       *prometheus.GaugeVec
	fetches     *prometheus.CounterVec
	lastSuccess *prometheus.GaugeVec
}

// New registers the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		price: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "oracle_price",
			Help:      "Latest scaled oracle answer per pair",
		}, []string{"pair"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Oracle fetches by outcome",
		}, []string{"pair", "outcome"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful fetch per pair",
		}, []string{"pair"}),
	}
	m.registry.MustRegister(m.price, m.fetches, m.lastSuccess)
	return m
}

// Observe records a settled fetch. Idle and Loading snapshots are ignored.
func (m *Metrics) Observe(snap controller.Snapshot) {
	p := snap.Pair.String()
	switch snap.State.Status {
	case controller.StatusSuccess:
		m.fetches.WithLabelValues(p, "success").Inc()
		m.price.WithLabelValues(p).Set(snap.State.Exact.InexactFloat64())
		m.lastSuccess.WithLabelValues(p).SetToCurrentTime()
	case controller.StatusFailed:
		m.fetches.WithLabelValues(p, "failed").Inc()
	}
}

// WriteTextfile atomically writes the current values in text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
