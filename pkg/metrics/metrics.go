package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Booking flow metrics
	BookingsTotal      *prometheus.CounterVec
	BookingLatency     prometheus.Histogram
	StaleSlotsDetected prometheus.Counter

	// Upstream backend metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec

	// Idempotency store metrics
	IdempotencyOps     *prometheus.CounterVec
	IdempotencySweeped prometheus.Counter

	// Payment handoff metrics
	PaymentInitiations *prometheus.CounterVec
	PaymentReturns     *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		BookingsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bookings_total",
			Help:      "Booking submissions by outcome",
		}, []string{"outcome"}),
		BookingLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "booking_duration_seconds",
			Help:      "End-to-end booking submission latency",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		StaleSlotsDetected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "stale_slots_detected_total",
			Help:      "Bookings refused because slot capacity was exhausted between fetch and submit",
		}),
		UpstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "upstream_requests_total",
			Help:      "Requests to the Medify backend by operation and result",
		}, []string{"operation", "result"}),
		UpstreamLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of requests to the Medify backend",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		IdempotencyOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "idempotency_store_operations_total",
			Help:      "Idempotency store operations by kind and result",
		}, []string{"operation", "result"}),
		IdempotencySweeped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "idempotency_records_sweeped_total",
			Help:      "Expired idempotency records removed by the janitor",
		}),
		PaymentInitiations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "payment_initiations_total",
			Help:      "Payment initiation attempts by result",
		}, []string{"result"}),
		PaymentReturns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "payment_returns_total",
			Help:      "Payment provider return-page hits by outcome",
		}, []string{"outcome"}),
	}
}
