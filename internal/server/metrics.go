package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/content"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/registry"
)

// Metrics holds the server's Prometheus instruments. All metrics live in
// the "crewhub" namespace.
type Metrics struct {
	entries         *prometheus.GaugeVec
	mutations       *prometheus.CounterVec
	feedClients     prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the server's metrics with reg and returns them.
// Use a fresh prometheus.NewRegistry per test to avoid duplicate
// registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		entries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "crewhub",
			Name:      "registry_entries",
			Help:      "Current number of registry entries by kind and source",
		}, []string{"kind", "source"}),

		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crewhub",
			Name:      "registry_mutations_total",
			Help:      "Total registry mutations (register and unregister) by kind",
		}, []string{"kind"}),

		feedClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "crewhub",
			Name:      "feed_clients",
			Help:      "Number of connected WebSocket change-feed clients",
		}),

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crewhub",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crewhub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveCatalog subscribes to every registry in the catalog so the
// entry gauges and mutation counters track all changes, including those
// made by in-process callers that never touch the HTTP API.
func (m *Metrics) ObserveCatalog(c *content.Catalog) {
	observeRegistry(m, content.KindProps, c.Props)
	observeRegistry(m, content.KindEnvironments, c.Environments)
	observeRegistry(m, content.KindBlueprints, c.Blueprints)
}

func observeRegistry[T any](m *Metrics, kind content.Kind, r *registry.Registry[T]) {
	update := func() {
		m.entries.WithLabelValues(string(kind), string(registry.SourceBuiltin)).
			Set(float64(len(r.ListBySource(registry.SourceBuiltin))))
		m.entries.WithLabelValues(string(kind), string(registry.SourceMod)).
			Set(float64(len(r.ListBySource(registry.SourceMod))))
	}
	update()
	r.Subscribe(func() {
		m.mutations.WithLabelValues(string(kind)).Inc()
		update()
	})
}
