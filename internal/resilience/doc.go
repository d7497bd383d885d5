// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers and retry logic used around the post store.
//
// The package supports:
//   - Circuit breakers for store reads on the preview path
//   - Retry logic with exponential backoff and jitter for snapshot refreshes
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.PreviewStoreConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return store.GetPreviewBySlug(ctx, slug)
//	})
//
//	retryConfig := retry.SnapshotConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return refreshSnapshot(ctx)
//	})
package resilience
