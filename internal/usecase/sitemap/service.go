// Package sitemap maintains rendered sitemap and RSS snapshots of the
// published posts. Snapshots are rebuilt on a schedule and served from
// memory, so crawler traffic for these endpoints never reaches the store.
package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"savvy-blog/internal/domain/entity"
	"savvy-blog/internal/resilience/retry"
)

// Store is the single read the snapshot builder needs.
type Store interface {
	ListPublished(ctx context.Context) ([]*entity.BlogPost, error)
}

// Config holds the site-level settings stamped into the rendered feeds.
type Config struct {
	Origin      string
	SiteName    string
	Description string
}

// Service builds and serves sitemap and RSS snapshots.
type Service struct {
	store  Store
	cfg    Config
	logger *slog.Logger

	mu          sync.RWMutex
	sitemapXML  []byte
	rssXML      []byte
	refreshedAt time.Time
}

// NewService creates a snapshot service. Snapshots are empty until the first
// Refresh succeeds.
func NewService(store Store, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, cfg: cfg, logger: logger}
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// Refresh rebuilds both snapshots from the store, retrying transient store
// failures with backoff. On failure the previous snapshots stay in place.
func (s *Service) Refresh(ctx context.Context) error {
	var posts []*entity.BlogPost
	err := retry.WithBackoff(ctx, retry.SnapshotConfig(), func() error {
		var err error
		posts, err = s.store.ListPublished(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("refresh snapshots: %w", err)
	}

	sitemapXML, err := s.renderSitemap(posts)
	if err != nil {
		return fmt.Errorf("render sitemap: %w", err)
	}
	rssXML, err := s.renderRSS(posts)
	if err != nil {
		return fmt.Errorf("render rss: %w", err)
	}

	s.mu.Lock()
	s.sitemapXML = sitemapXML
	s.rssXML = rssXML
	s.refreshedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info("feed snapshots refreshed", slog.Int("posts", len(posts)))
	return nil
}

// Sitemap returns the current sitemap snapshot. ok is false until the first
// successful Refresh.
func (s *Service) Sitemap() (body []byte, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sitemapXML, s.sitemapXML != nil
}

// RSS returns the current RSS snapshot. ok is false until the first
// successful Refresh.
func (s *Service) RSS() (body []byte, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rssXML, s.rssXML != nil
}

// RefreshedAt returns the time of the last successful refresh.
func (s *Service) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

func (s *Service) renderSitemap(posts []*entity.BlogPost) ([]byte, error) {
	urls := []sitemapURL{{Loc: s.cfg.Origin + "/"}}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     s.cfg.Origin + "/blog/" + p.Slug,
			LastMod: p.CreatedAt.Format("2006-01-02"),
		})
	}
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	return encodeWithHeader(set)
}

func (s *Service) renderRSS(posts []*entity.BlogPost) ([]byte, error) {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := s.cfg.Origin + "/blog/" + p.Slug
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Description,
			PubDate:     p.CreatedAt.Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}
	feed := rss{
		Version: "2.0",
		Channel: rssChannel{
			Title:       s.cfg.SiteName,
			Link:        s.cfg.Origin,
			Description: s.cfg.Description,
			Items:       items,
		},
	}
	return encodeWithHeader(feed)
}

func encodeWithHeader(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
