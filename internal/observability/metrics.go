package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// splitter.
type Metrics struct {
	StormsSplit  prometheus.Counter
	LinesWritten prometheus.Counter
	OrphanLines  prometheus.Counter
	RunActive    prometheus.Gauge

	StormFileLines prometheus.Histogram

	// Kafka announcement metrics.
	AnnouncementsPublished prometheus.Counter
	AnnounceFailures       prometheus.Counter
}

// NewMetrics creates and registers all splitter metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		StormsSplit: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_splitter",
			Name:      "storms_split_total",
			Help:      "Total per-storm output files completed.",
		}),
		LinesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_splitter",
			Name:      "lines_written_total",
			Help:      "Total input lines written to per-storm output files.",
		}),
		OrphanLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_splitter",
			Name:      "orphan_lines_total",
			Help:      "Input lines discarded because they preceded the first storm header.",
		}),
		RunActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_splitter",
			Name:      "run_active",
			Help:      "1 while a split run is in progress, 0 otherwise.",
		}),
		StormFileLines: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_splitter",
			Name:      "storm_file_lines",
			Help:      "Number of lines per completed storm file.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		AnnouncementsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_splitter",
			Name:      "announcements_published_total",
			Help:      "Storm-file announcements published to Kafka.",
		}),
		AnnounceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_splitter",
			Name:      "announce_failures_total",
			Help:      "Storm-file announcements that failed to publish.",
		}),
	}

	prometheus.MustRegister(
		m.StormsSplit,
		m.LinesWritten,
		m.OrphanLines,
		m.RunActive,
		m.StormFileLines,
		m.AnnouncementsPublished,
		m.AnnounceFailures,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		StormsSplit:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_splitter", Name: "storms_split_total"}),
		LinesWritten:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_splitter", Name: "lines_written_total"}),
		OrphanLines:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_splitter", Name: "orphan_lines_total"}),
		RunActive:              prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_splitter", Name: "run_active"}),
		StormFileLines:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_splitter", Name: "storm_file_lines"}),
		AnnouncementsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_splitter", Name: "announcements_published_total"}),
		AnnounceFailures:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_splitter", Name: "announce_failures_total"}),
	}
}
