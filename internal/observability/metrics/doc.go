// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (posts served, snapshot refreshes)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "savvy-blog/internal/observability/metrics"
//
//	func servePost(slug string) {
//	    start := time.Now()
//	    // ... fetch and serve ...
//	    metrics.RecordPostServed("detail")
//	    metrics.RecordDBQuery("get_post_by_slug", time.Since(start))
//	}
package metrics
