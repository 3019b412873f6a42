// Package observability provides Prometheus metrics for the points engine.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the batch engine.
type Metrics struct {
	// Ingestion metrics
	RecordsIngested  prometheus.Counter
	MalformedSkipped *prometheus.CounterVec

	// Run metrics
	RunsTotal              prometheus.Counter
	RunDuration            prometheus.Histogram
	RecordsProcessed       prometheus.Counter
	UnitsCreated           prometheus.Counter
	UnitsDeactivated       prometheus.Counter
	LiquidityPointsAwarded prometheus.Counter
	SwapPointsAwarded      prometheus.Counter
	PointsCapped           prometheus.Counter
}

// NewMetrics creates a Metrics instance with all metrics registered on the
// default registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "veswap_points"
	}

	return &Metrics{
		RecordsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "records_ingested_total",
			Help:      "Total number of transaction records read from the source",
		}),
		MalformedSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "malformed_skipped_total",
			Help:      "Total number of records skipped in skip-and-log mode, by reason",
		}, []string{"reason"}),

		RunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Total number of completed batch runs",
		}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Batch run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		RecordsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "records_processed_total",
			Help:      "Total number of records fed into the engine",
		}),
		UnitsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "units_created_total",
			Help:      "Total liquidity units created by the unit ledger",
		}),
		UnitsDeactivated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "units_deactivated_total",
			Help:      "Total liquidity units deactivated by removals",
		}),
		LiquidityPointsAwarded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "liquidity_points_awarded_total",
			Help:      "Total liquidity points credited, after cap enforcement",
		}),
		SwapPointsAwarded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "swap_points_awarded_total",
			Help:      "Total swap points credited",
		}),
		PointsCapped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "points_capped_total",
			Help:      "Total liquidity points withheld by the weekly cap",
		}),
	}
}

// Handler returns an HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
