package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Booking flow
	BookingsAccepted  prometheus.Counter
	BookingsRejected  *prometheus.CounterVec
	CitasInStore      prometheus.Gauge
	FullyBookedChecks prometheus.Counter

	// Sync worker
	SyncRuns    *prometheus.CounterVec
	SyncLatency prometheus.Histogram
	RowsDropped prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		BookingsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_accepted_total",
			Help:      "Total number of accepted booking requests",
		}),
		BookingsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_rejected_total",
			Help:      "Total number of rejected booking requests by reason",
		}, []string{"reason"}),
		CitasInStore: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "citas_in_store",
			Help:      "Current number of citas held in memory",
		}),
		FullyBookedChecks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fully_booked_days_total",
			Help:      "Times an availability check found a fully booked day",
		}),
		SyncRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "Store refreshes from the persistence backend by result",
		}, []string{"result"}),
		SyncLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Time spent reloading citas from the persistence backend",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		RowsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_rows_dropped_total",
			Help:      "Malformed rows dropped while loading from the backend",
		}),
	}
}
