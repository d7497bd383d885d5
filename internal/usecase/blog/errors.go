// Package blog provides use cases for serving published blog content.
// It implements the listing, single-post, and sidebar queries backed by the
// post repository, plus the feed accumulator used for incremental loading.
package blog

import "errors"

// Sentinel errors for blog use case operations.
var (
	// ErrPostNotFound indicates that no published post has the requested slug.
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidSlug indicates that the requested slug failed validation.
	// Slugs are limited to lowercase URL-safe characters.
	ErrInvalidSlug = errors.New("invalid slug")

	// ErrStaleLoad indicates that a feed page load finished after the feed
	// was reset, so its results were discarded.
	ErrStaleLoad = errors.New("stale feed load discarded")
)
