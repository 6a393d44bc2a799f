package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	FilesCollected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "burrow_files_collected_total",
		Help: "Number of source files found in the last collection pass.",
	})

	ModulesRegistered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "burrow_modules_registered_total",
		Help: "Number of module identities in the last registry build.",
	})

	ImportEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "burrow_import_edges_total",
		Help: "Number of resolved importer->module edges in the last run.",
	})

	ParseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "burrow_parse_failures_total",
		Help: "Total number of files that failed to parse or read.",
	})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "burrow_analysis_seconds",
		Help:    "Time spent on one full analysis pass.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "burrow_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RescansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "burrow_rescans_total",
		Help: "Total number of watch-mode re-analysis passes.",
	})
)
