// Package metrics holds the Prometheus collectors fed by the request pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts requests that completed normally, by method, route and status.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usermanagement_requests_total",
			Help: "Completed requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records request duration in seconds by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "usermanagement_request_duration_seconds",
			Help:    "Request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// UnhandledErrorsTotal counts faults caught by the error-containment stage.
	UnhandledErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usermanagement_unhandled_errors_total",
			Help: "Faults converted to 500 responses",
		},
		[]string{"kind"},
	)

	// AuthRejectedTotal counts requests stopped by the authentication stage.
	AuthRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "usermanagement_auth_rejected_total",
			Help: "Requests rejected as unauthorized",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		UnhandledErrorsTotal,
		AuthRejectedTotal,
	)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
