package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the migration pipeline.
type Metrics struct {
	RowsRead        prometheus.Counter
	RowsWritten     prometheus.Counter
	RowsFiltered    prometheus.Counter
	TransformErrors prometheus.Counter
	PipelineRunning prometheus.Gauge

	// Lookup and extraction metrics.
	UnmappedTerms   *prometheus.CounterVec // labels: kind={category,tag}
	ImagesExtracted prometheus.Counter
	VideosExtracted prometheus.Counter
	AddressCacheHit *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsWritten,
		m.RowsFiltered,
		m.TransformErrors,
		m.PipelineRunning,
		m.UnmappedTerms,
		m.ImagesExtracted,
		m.VideosExtracted,
		m.AddressCacheHit,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geodir_migrate",
			Name:      "rows_read_total",
			Help:      "Total rows read from the ACF export.",
		}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geodir_migrate",
			Name:      "rows_written_total",
			Help:      "Total listings written to the import output.",
		}),
		RowsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geodir_migrate",
			Name:      "rows_filtered_total",
			Help:      "Total rows skipped by category/tag/layout filters.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geodir_migrate",
			Name:      "transform_errors_total",
			Help:      "Total rows skipped because transformation failed.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "geodir_migrate",
			Name:      "pipeline_running",
			Help:      "1 while the migration pass is active, 0 when finished.",
		}),
		UnmappedTerms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geodir_migrate",
			Name:      "unmapped_terms_total",
			Help:      "Taxonomy lookups that fell back to the default term, by kind.",
		}, []string{"kind"}),
		ImagesExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geodir_migrate",
			Name:      "images_extracted_total",
			Help:      "Image attachments extracted from post content.",
		}),
		VideosExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geodir_migrate",
			Name:      "videos_extracted_total",
			Help:      "YouTube attachments extracted from post content.",
		}),
		AddressCacheHit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geodir_migrate",
			Name:      "address_cache_lookups_total",
			Help:      "Street address cache lookups by result.",
		}, []string{"result"}),
	}
}
