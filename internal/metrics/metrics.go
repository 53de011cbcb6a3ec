package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	BillingRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_runs_total",
		Help: "Monthly billing job runs by outcome (ok, error)",
	}, []string{"outcome"})

	BillingDebitsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billing_debits_created_total",
		Help: "Monthly debit payments created by the billing job",
	})

	BillingStudentsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billing_students_skipped_total",
		Help: "Students skipped by the billing job (ineligible, zero fee, already billed or failed)",
	})
)
