// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"backend", "kind"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"backend", "kind"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_cache_errors_total",
			Help: "Total number of cache operation failures",
		},
		[]string{"backend", "operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "helpdesk_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	TicketSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "helpdesk_ticket_search_duration_seconds",
			Help:    "Duration of ticket searches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	StatsRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_stats_rebuilds_total",
			Help: "Total number of quick stats rebuilds",
		},
		[]string{"status"},
	)

	StatsRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "helpdesk_stats_rebuild_duration_seconds",
			Help:    "Duration of quick stats rebuilds in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_events_published_total",
			Help: "Total number of domain events forwarded to pub/sub",
		},
		[]string{"event", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "helpdesk_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
