// Package metrics exposes Prometheus counters for hostel operations. They
// are registered on the default registry and served by promhttp on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoomAssignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostel_room_assignments_total",
		Help: "Room assignment changes by kind (assign, unassign, swap, release).",
	}, []string{"kind"})

	PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostel_payments_recorded_total",
		Help: "Payments recorded by status.",
	}, []string{"status"})

	VisitorCheckIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostel_visitor_checkins_total",
		Help: "Visitor check-ins.",
	})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostel_login_attempts_total",
		Help: "Admin login attempts by result.",
	}, []string{"result"})

	OverdueMarked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostel_payments_marked_overdue_total",
		Help: "Payments moved to Overdue by the scheduled sweep.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostel_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hostel_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
