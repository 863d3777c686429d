package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	TransitionsApplied  *prometheus.CounterVec
	TransitionsRejected prometheus.Counter
	SyncFailures        prometheus.Counter
	InvoicesGenerated   prometheus.Counter
	NotificationsSent   *prometheus.CounterVec
	SideEffectTime      prometheus.Histogram
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TransitionsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_applied_total",
			Help:      "The total number of applied booking status transitions",
		}, []string{"target"}),
		TransitionsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_rejected_total",
			Help:      "The total number of rejected booking status transitions",
		}),
		SyncFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_sync_failures_total",
			Help:      "The total number of failed remote store synchronizations",
		}),
		InvoicesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_generated_total",
			Help:      "The total number of generated invoices",
		}),
		NotificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of customer notifications sent",
		}, []string{"kind"}),
		SideEffectTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "side_effect_duration_seconds",
			Help:      "Time taken to dispatch transition side effects",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
