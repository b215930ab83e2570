package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "realme_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedRequests counts personalized feed requests by outcome.
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realme_feed_requests_total",
		Help: "Total number of personalized feed requests",
	}, []string{"outcome"})

	// ListingCacheLookups counts community listing cache lookups by result.
	ListingCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realme_listing_cache_lookups_total",
		Help: "Total number of community listing cache lookups",
	}, []string{"result"})

	// AuthGateResolutions counts authentication gate outcomes per request.
	AuthGateResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realme_auth_gate_resolutions_total",
		Help: "Total number of authentication gate resolutions by outcome",
	}, []string{"outcome"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
