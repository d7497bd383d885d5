package metrics

import "time"

// RecordPostServed records a post payload served to a client.
// Surface should be one of "list", "detail", "sidebar", "preview".
func RecordPostServed(surface string) {
	PostsServedTotal.WithLabelValues(surface).Inc()
}

// UpdatePostsTotal updates the published post count gauge.
// This gauge should be updated periodically to reflect the current state.
func UpdatePostsTotal(count int64) {
	PostsTotal.Set(float64(count))
}

// RecordSnapshotRefresh records a sitemap/RSS snapshot refresh run.
func RecordSnapshotRefresh(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	SnapshotRefreshTotal.WithLabelValues(status).Inc()
	SnapshotRefreshDuration.Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_page", "get_post_by_slug").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
