// Package pathutil provides URL path normalization for metrics labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization so normalization stays cheap on the hot path.
var pathPatterns = []*PathPattern{
	// API routes keyed by post slug
	{Pattern: regexp.MustCompile(`^/api/blog/posts/[^/]+/sidebar$`), Template: "/api/blog/posts/:slug/sidebar"},
	{Pattern: regexp.MustCompile(`^/api/blog/posts/[^/]+$`), Template: "/api/blog/posts/:slug"},

	// Crawler-facing preview routes; anything under /blog/ carries a slug
	{Pattern: regexp.MustCompile(`^/blog/rss\.xml$`), Template: "/blog/rss.xml"},
	{Pattern: regexp.MustCompile(`^/blog/[^/]+(/.*)?$`), Template: "/blog/:slug"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths containing post slugs (e.g., /blog/how-to-grow) to template
// format (e.g., /blog/:slug). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/blog/how-to-grow")            // "/blog/:slug"
//	NormalizePath("/blog/how-to-grow/extra")      // "/blog/:slug"
//	NormalizePath("/blog/rss.xml")                // "/blog/rss.xml" (unchanged)
//	NormalizePath("/api/blog/posts/my-post")      // "/api/blog/posts/:slug"
//	NormalizePath("/api/blog/posts")              // "/api/blog/posts" (unchanged)
//	NormalizePath("/api/blog/categories")         // "/api/blog/categories" (unchanged)
//	NormalizePath("/sitemap.xml")                 // "/sitemap.xml" (unchanged)
//	NormalizePath("/health")                      // "/health" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/api/blog/posts?page=1")       // "/api/blog/posts"
//	NormalizePath("/blog/how-to-grow/")           // "/blog/:slug"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// Static paths like /health, /metrics, /sitemap.xml pass through unchanged
	return path
}
