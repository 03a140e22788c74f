package middleware

import (
	"net/http"
	"strconv"
	"time"

	"sportshub/internal/monitoring"
)

// MetricsMiddleware records request count and latency per route pattern.
// The pattern is read after next runs because ServeMux sets it while routing;
// requests that matched no route are grouped under "unmatched".
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		monitoring.ObserveRequest(route, r.Method, strconv.Itoa(wrapped.status), time.Since(start).Seconds())
	})
}
