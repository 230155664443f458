// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SchedulerCycles counts completed scan cycles by outcome.
	SchedulerCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_cycles_total",
			Help: "Total number of notification scan cycles",
		},
		[]string{"outcome"}, // outcome: ok, scan_error
	)

	// SchedulerCycleDuration observes how long a full scan cycle takes,
	// including waiting for all dispatch workers.
	SchedulerCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scheduler_cycle_duration_seconds",
			Help:    "Notification scan cycle duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~16s
		},
	)

	// NotificationsDispatched counts dispatch attempts by outcome.
	NotificationsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Total number of notification dispatch attempts",
		},
		[]string{"outcome"}, // outcome: sent, notify_error, mark_error
	)

	// DispatchWorkersActive tracks how many dispatch workers are running.
	DispatchWorkersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scheduler_dispatch_workers_active",
			Help: "Number of notification dispatch workers currently running",
		},
	)

	// HTTPRequestDuration observes HTTP request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// RecordCycle records one completed scan cycle.
func RecordCycle(outcome string, duration time.Duration) {
	SchedulerCycles.WithLabelValues(outcome).Inc()
	SchedulerCycleDuration.Observe(duration.Seconds())
}

// RecordDispatch records one dispatch attempt.
func RecordDispatch(outcome string) {
	NotificationsDispatched.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
