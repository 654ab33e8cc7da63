package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal tracks outbound API requests per target and method
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fueltrakr_api_requests_total",
			Help: "Total number of outbound API requests",
		},
		[]string{"target", "method"},
	)

	// APIRetriesTotal tracks retried attempts per target
	APIRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fueltrakr_api_retries_total",
			Help: "Total number of retried API attempts",
		},
		[]string{"target", "method"},
	)

	// APIErrorsTotal tracks terminal API failures per target and error kind
	APIErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fueltrakr_api_errors_total",
			Help: "Total number of failed API requests",
		},
		[]string{"target", "method", "error_type"},
	)

	// APILatency tracks request latency per target
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fueltrakr_api_latency_seconds",
			Help:    "Outbound API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"target", "method"},
	)

	// EntriesSubmitted tracks fuel entries created per mode
	EntriesSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fueltrakr_entries_submitted_total",
			Help: "Total number of fuel entries submitted",
		},
		[]string{"mode"},
	)
)
