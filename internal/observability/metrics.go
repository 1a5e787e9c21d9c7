package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// observation recorder.
type Metrics struct {
	SubmissionsTotal prometheus.Counter
	TableRows        prometheus.Gauge

	// Classification metrics.
	ClassificationsTotal *prometheus.CounterVec // labels: measure={rainfall,air,rainwater}, tier

	// Persistence metrics.
	PersistDuration prometheus.Histogram
	PersistErrors   prometheus.Counter

	// Alert metrics.
	AlertsTriggered    *prometheus.CounterVec // labels: kind={landslide,vegetation}
	AlertPublishErrors prometheus.Counter
	AlertsEnabled      prometheus.Gauge
}

// NewMetrics creates and registers all recorder metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SubmissionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "park_conditions",
			Name:      "submissions_total",
			Help:      "Total observation submissions accepted.",
		}),
		TableRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "park_conditions",
			Name:      "table_rows",
			Help:      "Current number of rows in the in-memory observation table.",
		}),
		ClassificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "park_conditions",
			Name:      "classifications_total",
			Help:      "Risk tiers assigned per measure.",
		}, []string{"measure", "tier"}),
		PersistDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "park_conditions",
			Name:      "persist_duration_seconds",
			Help:      "Duration of a full observation table rewrite.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		PersistErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "park_conditions",
			Name:      "persist_errors_total",
			Help:      "Total failed observation table writes.",
		}),
		AlertsTriggered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "park_conditions",
			Name:      "alerts_triggered_total",
			Help:      "Alerts raised by submissions, by kind.",
		}, []string{"kind"}),
		AlertPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "park_conditions",
			Name:      "alert_publish_errors_total",
			Help:      "Total failed alert publications to Kafka.",
		}),
		AlertsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "park_conditions",
			Name:      "alerts_enabled",
			Help:      "1 when Kafka alert publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.SubmissionsTotal,
		m.TableRows,
		m.ClassificationsTotal,
		m.PersistDuration,
		m.PersistErrors,
		m.AlertsTriggered,
		m.AlertPublishErrors,
		m.AlertsEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SubmissionsTotal:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "park_conditions", Name: "submissions_total"}),
		TableRows:            prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "park_conditions", Name: "table_rows"}),
		ClassificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "park_conditions", Name: "classifications_total"}, []string{"measure", "tier"}),
		PersistDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "park_conditions", Name: "persist_duration_seconds"}),
		PersistErrors:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "park_conditions", Name: "persist_errors_total"}),
		AlertsTriggered:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "park_conditions", Name: "alerts_triggered_total"}, []string{"kind"}),
		AlertPublishErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "park_conditions", Name: "alert_publish_errors_total"}),
		AlertsEnabled:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "park_conditions", Name: "alerts_enabled"}),
	}
}
