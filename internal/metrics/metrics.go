package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shareit",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by endpoint.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "bookings_created_total",
			Help:      "Bookings created.",
		},
	)

	bookingsFinalized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "bookings_finalized_total",
			Help:      "Bookings finalized by decision.",
		},
		[]string{"decision"},
	)

	exportsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "exports_completed_total",
			Help:      "Completed bookings exports.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookingsCreated, bookingsFinalized, exportsCompleted)
	})
}

// IncHTTP increments the request counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// ObserveHTTPDuration records a request duration in seconds.
func ObserveHTTPDuration(endpoint string, seconds float64) {
	httpDuration.WithLabelValues(endpoint).Observe(seconds)
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncBookingFinalized(decision string) {
	bookingsFinalized.WithLabelValues(decision).Inc()
}

func IncExportCompleted() {
	exportsCompleted.Inc()
}
