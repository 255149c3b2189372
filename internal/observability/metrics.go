package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion pipeline.
type Metrics struct {
	EventsFetched  *prometheus.CounterVec // labels: source
	FetchErrors    *prometheus.CounterVec // labels: source
	EventsUpserted prometheus.Counter
	UpsertErrors   prometheus.Counter

	NotificationsSent  *prometheus.CounterVec // labels: sink
	NotificationErrors *prometheus.CounterVec // labels: sink

	CyclesTotal   prometheus.Counter
	CycleDuration prometheus.Histogram
	PollerRunning prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		EventsFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "events_fetched_total",
			Help:      "Total normalized events returned by each feed.",
		}, []string{"source"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "fetch_errors_total",
			Help:      "Total failed feed fetches.",
		}, []string{"source"}),
		EventsUpserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "events_upserted_total",
			Help:      "Total events written to the store.",
		}),
		UpsertErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "upsert_errors_total",
			Help:      "Total failed store upserts.",
		}),
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "notifications_sent_total",
			Help:      "Total successful notification deliveries by sink.",
		}, []string{"sink"}),
		NotificationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "notification_errors_total",
			Help:      "Total failed notification deliveries by sink.",
		}, []string{"sink"}),
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "cycles_total",
			Help:      "Total completed poll cycles.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "disaster_alerts",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete poll cycle across all sources.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disaster_alerts",
			Name:      "poller_running",
			Help:      "1 when the poll loop is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.EventsFetched,
		m.FetchErrors,
		m.EventsUpserted,
		m.UpsertErrors,
		m.NotificationsSent,
		m.NotificationErrors,
		m.CyclesTotal,
		m.CycleDuration,
		m.PollerRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering collectors, to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		EventsFetched:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_alerts", Name: "events_fetched_total"}, []string{"source"}),
		FetchErrors:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_alerts", Name: "fetch_errors_total"}, []string{"source"}),
		EventsUpserted:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_alerts", Name: "events_upserted_total"}),
		UpsertErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_alerts", Name: "upsert_errors_total"}),
		NotificationsSent:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_alerts", Name: "notifications_sent_total"}, []string{"sink"}),
		NotificationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_alerts", Name: "notification_errors_total"}, []string{"sink"}),
		CyclesTotal:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_alerts", Name: "cycles_total"}),
		CycleDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "disaster_alerts", Name: "cycle_duration_seconds"}),
		PollerRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "disaster_alerts", Name: "poller_running"}),
	}
}
