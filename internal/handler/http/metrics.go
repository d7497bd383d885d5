package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"savvy-blog/internal/handler/http/pathutil"
	"savvy-blog/internal/handler/http/responsewriter"
	"savvy-blog/internal/observability/metrics"
)

// MetricsMiddleware records request metrics for every HTTP request.
// Paths are normalized before being used as label values so dynamic
// segments (post slugs) do not explode label cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		wrapped := responsewriter.Wrap(w)
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		path := pathutil.NormalizePath(r.URL.Path)
		status := strconv.Itoa(wrapped.StatusCode())

		observeSLO(wrapped.StatusCode(), duration)

		requestSize := 0
		if r.ContentLength > 0 {
			requestSize = int(r.ContentLength)
		}

		metrics.RecordHTTPRequest(
			r.Method,
			path,
			status,
			duration,
			requestSize,
			wrapped.BytesWritten(),
		)
	})
}

// MetricsHandler returns the Prometheus scrape endpoint handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
