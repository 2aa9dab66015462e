// Package metrics exposes Prometheus counters for the scan pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors on a private registry so tests can
// create independent instances.
type Metrics struct {
	registry *prometheus.Registry

	ScansTotal           prometheus.Counter
	DefectsTotal         prometheus.Counter
	ScanErrorsTotal      prometheus.Counter
	RejectedUploadsTotal prometheus.Counter
	ScanDuration         prometheus.Histogram
	LiveClients          prometheus.Gauge
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		ScansTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "infrawatch_scans_total",
			Help: "Completed detection scans.",
		}),
		DefectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "infrawatch_defects_total",
			Help: "Detections accepted across all scans.",
		}),
		ScanErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "infrawatch_scan_errors_total",
			Help: "Scans that failed at the inference step.",
		}),
		RejectedUploadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "infrawatch_rejected_uploads_total",
			Help: "Uploads rejected before inference.",
		}),
		ScanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "infrawatch_scan_duration_seconds",
			Help:    "End-to-end scan handling time.",
			Buckets: prometheus.DefBuckets,
		}),
		LiveClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "infrawatch_live_clients",
			Help: "Connected dashboard websocket clients.",
		}),
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
