// Package feeds provides HTTP handlers for the sitemap and RSS endpoints.
// Both serve pre-rendered XML snapshots; nothing is generated per request.
package feeds

import (
	"log"
	"net/http"
)

// SnapshotSource exposes the current sitemap and RSS snapshots.
// ok is false until the first successful refresh.
type SnapshotSource interface {
	Sitemap() (body []byte, ok bool)
	RSS() (body []byte, ok bool)
}

// SitemapHandler serves the sitemap XML snapshot.
type SitemapHandler struct {
	Source SnapshotSource
}

func (h SitemapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, ok := h.Source.Sitemap()
	serveSnapshot(w, body, ok)
}

// RSSHandler serves the RSS feed XML snapshot.
type RSSHandler struct {
	Source SnapshotSource
}

func (h RSSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, ok := h.Source.RSS()
	serveSnapshot(w, body, ok)
}

func serveSnapshot(w http.ResponseWriter, body []byte, ok bool) {
	if !ok {
		// First refresh has not completed yet; tell crawlers to come back
		w.Header().Set("Retry-After", "60")
		http.Error(w, "feed snapshot not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("feeds: failed to write response: %v", err)
	}
}
