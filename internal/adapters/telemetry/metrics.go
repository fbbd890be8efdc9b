// Package telemetry registers the Prometheus metrics of the registration service.
//
// All metrics live on the default registry and are served by the side-channel
// metrics server started from main when TIC_METRICS_ADDR is set:
//
//	GET http://<TIC_METRICS_ADDR>/metrics
//
// HTTP metrics are labelled by route pattern rather than raw URL to keep label
// cardinality bounded.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeEmpty   = "empty"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tic_http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tic_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tic_db_query_duration_seconds",
			Help:    "Histogram of database call latencies, by operation.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"op"},
	)

	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tic_registrations_total",
			Help: "Total number of accepted membership applications.",
		},
	)

	RegistrationRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tic_registration_rejections_total",
			Help: "Applications rejected by validation, by reason.",
		},
		[]string{"reason"},
	)

	// ForwardTotal counts fire-and-forget deliveries to the remote endpoint.
	// Failures never reach the applicant; this counter is the only trace besides logs.
	ForwardTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tic_forward_total",
			Help: "Registration forwards to the remote endpoint, by outcome.",
		},
		[]string{"outcome"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tic_notifications_total",
			Help: "Admin notification emails, by outcome.",
		},
		[]string{"outcome"},
	)

	AdminLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tic_admin_logins_total",
			Help: "Admin login attempts, by outcome.",
		},
		[]string{"outcome"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tic_csv_exports_total",
			Help: "CSV export requests, by outcome.",
		},
		[]string{"outcome"},
	)
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
