package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportshub_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sportshub_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportshub_view_cache_lookups_total",
			Help: "View cache lookups by collection and result (hit, miss, error)",
		},
		[]string{"collection", "result"},
	)

	staleNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportshub_stale_notifications_total",
			Help: "Stale view notifications received, by collection",
		},
		[]string{"collection"},
	)

	mutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportshub_mutations_total",
			Help: "Create/update/delete operations by collection, operation and outcome",
		},
		[]string{"collection", "operation", "outcome"},
	)
)

// ObserveRequest records one served HTTP request.
func ObserveRequest(route, method, status string, seconds float64) {
	httpRequests.WithLabelValues(route, method, status).Inc()
	httpDuration.WithLabelValues(route, method).Observe(seconds)
}

// CacheLookup records a view cache lookup result: "hit", "miss" or "error".
func CacheLookup(collection, result string) {
	cacheLookups.WithLabelValues(collection, result).Inc()
}

// Mutation records the outcome ("ok" or "error") of a write operation.
func Mutation(collection, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	mutations.WithLabelValues(collection, operation, outcome).Inc()
}

// StaleNotification records a received stale view notification.
func StaleNotification(collection string) {
	staleNotifications.WithLabelValues(collection).Inc()
}
