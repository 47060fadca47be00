// Package metrics exposes catalog operation counters on a private
// prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	opLoad = "load"
)

// Metrics holds all Prometheus metrics for a session
type Metrics struct {
	registry *prometheus.Registry

	operationsTotal *prometheus.CounterVec
	catalogRecords  prometheus.Gauge
	loadDuration    prometheus.Histogram
}

// New creates the metrics and registers them on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frota_operations_total",
				Help: "Total number of catalog operations",
			},
			[]string{"op", "status"},
		),

		catalogRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "frota_catalog_records",
				Help: "Number of records in the catalog",
			},
		),

		loadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "frota_load_duration_seconds",
				Help:    "Time spent loading the catalog file",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOperation counts one operation outcome
func (m *Metrics) RecordOperation(op string, success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.operationsTotal.WithLabelValues(op, status).Inc()
}

// RecordLoad records a catalog load
func (m *Metrics) RecordLoad(records int, success bool, duration time.Duration) {
	m.RecordOperation(opLoad, success)
	m.loadDuration.Observe(duration.Seconds())
	if success {
		m.catalogRecords.Set(float64(records))
	}
}

// SetCatalogRecords updates the catalog size gauge
func (m *Metrics) SetCatalogRecords(n int) {
	m.catalogRecords.Set(float64(n))
}

// WriteTextfile writes every metric to path in the text exposition format
// read by node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
