// Package metrics exposes the Prometheus collectors shared across the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransfersTotal counts transfer attempts by terminal status
	TransfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transfers_total",
		Help: "Total transfer attempts by terminal status",
	}, []string{"status"})

	// HTTPRequestsTotal counts HTTP requests by method, route and status code
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency per route
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "route"})

	// OutboxPublishedTotal counts outbox events published to the event stream
	OutboxPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_outbox_published_total",
		Help: "Outbox events successfully published",
	})

	// ArchivedEntriesTotal counts transfer events written to the archive
	ArchivedEntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_archived_entries_total",
		Help: "Transfer events written to the archive",
	})
)
