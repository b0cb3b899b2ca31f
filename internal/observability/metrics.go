// Package observability provides Prometheus collectors and OpenTelemetry tracing setup.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careline_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "careline_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// TokensIssued counts issued tokens by type (access/refresh).
	TokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careline_tokens_issued_total",
		Help: "Total number of JWT tokens issued by type",
	}, []string{"type"})

	// TokensBlacklisted counts refresh tokens revoked via logout.
	TokensBlacklisted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "careline_tokens_blacklisted_total",
		Help: "Total number of refresh tokens blacklisted",
	})

	// MessagesCreated counts messages accepted for delivery.
	MessagesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "careline_messages_created_total",
		Help: "Total number of messages created",
	})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
