package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memepage_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "memepage_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// TrendingRecomputes counts trending score materializations.
	TrendingRecomputes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memepage_trending_recomputes_total",
		Help: "Total number of trending score recomputations",
	})

	// CacheHits counts cache lookups by outcome (hit or miss) and key group.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memepage_cache_lookups_total",
		Help: "Total cache lookups by outcome",
	}, []string{"group", "outcome"})

	// NotificationConnections is the gauge of active notification socket connections.
	NotificationConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "memepage_notification_connections",
		Help: "Number of active notification WebSocket connections",
	})

	// NotificationsPublished counts notifications published by type.
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memepage_notifications_published_total",
		Help: "Total notifications published by type",
	}, []string{"type"})

	// NotificationDrops counts notifications dropped due to slow consumers.
	NotificationDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memepage_notification_drops_total",
		Help: "Total notifications dropped due to backpressure",
	}, []string{"reason"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery records query latency from call to invocation, meant for defer:
//
//	defer observability.TrackQuery("list", "memes")()
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}

// RecordCacheLookup increments the cache lookup counter for the key group.
func RecordCacheLookup(group string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheHits.WithLabelValues(group, outcome).Inc()
}
