// Package metrics provides Prometheus collectors for tap operations.
// Collectors are registered once at package load; callers record against
// the package-level variables directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesFetched counts response pages processed per stream
	PagesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tap_pages_fetched_total",
			Help: "Total number of response pages processed",
		},
		[]string{"stream"},
	)

	// RecordsExtracted counts records emitted per stream
	RecordsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tap_records_extracted_total",
			Help: "Total number of records extracted",
		},
		[]string{"stream"},
	)

	// RecordsDropped counts records discarded by post-processing
	RecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tap_records_dropped_total",
			Help: "Total number of records dropped by post-processing",
		},
		[]string{"stream"},
	)

	// HTTPRequests counts API requests by outcome
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tap_http_requests_total",
			Help: "Total number of API requests issued",
		},
		[]string{"path", "outcome"},
	)

	// RequestDuration observes API request latency
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tap_http_request_duration_seconds",
			Help:    "API request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
)
