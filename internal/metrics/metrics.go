// Package metrics exposes the Prometheus instrumentation shared by the
// services and the HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements the services' metrics interfaces on a Prometheus
// registry.
type Collector struct {
	lifecycleEvaluations *prometheus.CounterVec
	bidsAccepted         prometheus.Counter
	bidAmounts           prometheus.Histogram
	bidsRejected         *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewCollector registers the marketplace metrics on the given registerer.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		lifecycleEvaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auction_lifecycle_evaluations_total",
			Help: "Lifecycle evaluations by resulting status",
		}, []string{"status"}),

		bidsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "auction_bids_accepted_total",
			Help: "Accepted bids",
		}),

		bidAmounts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "auction_bid_amount",
			Help:    "Accepted bid amounts",
			Buckets: prometheus.ExponentialBuckets(10, 10, 7),
		}),

		bidsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auction_bids_rejected_total",
			Help: "Rejected bids by reason",
		}, []string{"reason"}),

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, path, and status",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

func (c *Collector) RecordLifecycleEvaluation(status string) {
	c.lifecycleEvaluations.WithLabelValues(status).Inc()
}

func (c *Collector) RecordBidAccepted(amount float64) {
	c.bidsAccepted.Inc()
	c.bidAmounts.Observe(amount)
}

func (c *Collector) RecordBidRejected(reason string) {
	c.bidsRejected.WithLabelValues(reason).Inc()
}
