// Package metrics exposes the Prometheus collectors for the API.
//
// Usage:
//
//	metrics.RecordAPIRequest("GET", "/api/pets", "200", 12*time.Millisecond)
//	metrics.RecordDonationTransition("ipn", "VALID", true)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelter_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shelter_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shelter_api_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	PanicsRecoveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelter_api_panics_recovered_total",
			Help: "Total number of handler panics turned into 500 responses",
		},
		[]string{"method"},
	)

	// Donation Metrics

	// DonationInitsTotal counts checkout session attempts by outcome.
	DonationInitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelter_donation_inits_total",
			Help: "Total number of donation session initializations",
		},
		[]string{"purpose", "result"},
	)

	// DonationTransitionsTotal counts gateway callbacks; applied=false means the record was already terminal.
	DonationTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelter_donation_transitions_total",
			Help: "Total number of donation status callbacks by source and target status",
		},
		[]string{"source", "status", "applied"},
	)

	// DonationCallbacksRejectedTotal counts callbacks that could not be applied at all.
	DonationCallbacksRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelter_donation_callbacks_rejected_total",
			Help: "Total number of rejected donation callbacks by reason",
		},
		[]string{"source", "reason"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordPanic(method string) {
	PanicsRecoveredTotal.WithLabelValues(method).Inc()
}

func RecordDonationInit(purpose, result string) {
	DonationInitsTotal.WithLabelValues(purpose, result).Inc()
}

func RecordDonationTransition(source, status string, applied bool) {
	a := "false"
	if applied {
		a = "true"
	}
	DonationTransitionsTotal.WithLabelValues(source, status, a).Inc()
}

func RecordCallbackRejected(source, reason string) {
	DonationCallbacksRejectedTotal.WithLabelValues(source, reason).Inc()
}
