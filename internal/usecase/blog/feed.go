package blog

import (
	"context"
	"fmt"
	"sync"

	"savvy-blog/internal/common/pagination"
	"savvy-blog/internal/domain/entity"
)

// Feed accumulates listing pages for incremental loading. Pages load in the
// background while the caller may switch the category filter at any time;
// each load is tagged with the generation current when it started, and a
// load whose generation no longer matches at completion is discarded so a
// stale filter's results never leak into the new filter's feed.
type Feed struct {
	svc *Service

	mu         sync.Mutex
	generation uint64
	category   string
	nextPage   int
	posts      []*entity.BlogPost
	hasMore    bool
}

// NewFeed creates an empty feed over the given service with no category filter.
func NewFeed(svc *Service) *Feed {
	return &Feed{svc: svc, hasMore: true}
}

// Reset clears the accumulated posts and switches the category filter.
// Any page load in flight when Reset is called will be discarded when it
// completes.
func (f *Feed) Reset(category string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.category = category
	f.nextPage = 0
	f.posts = nil
	f.hasMore = true
}

// LoadMore fetches the next page and appends it to the accumulated feed.
// Returns the full accumulated list and whether a further page likely
// exists. Returns ErrStaleLoad if the feed was reset while the page was in
// flight; the caller should treat the feed state as authoritative and the
// returned slice as nil.
func (f *Feed) LoadMore(ctx context.Context) ([]*entity.BlogPost, bool, error) {
	f.mu.Lock()
	if !f.hasMore {
		posts, hasMore := f.snapshotLocked()
		f.mu.Unlock()
		return posts, hasMore, nil
	}
	gen := f.generation
	params := pagination.Params{Page: f.nextPage, Category: f.category}
	f.mu.Unlock()

	page, err := f.svc.ListPosts(ctx, params)
	if err != nil {
		return nil, false, fmt.Errorf("load more: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		return nil, false, ErrStaleLoad
	}

	f.posts = append(f.posts, page.Posts...)
	f.nextPage++
	f.hasMore = page.HasMore

	posts, hasMore := f.snapshotLocked()
	return posts, hasMore, nil
}

// Posts returns a copy of the accumulated posts.
func (f *Feed) Posts() []*entity.BlogPost {
	f.mu.Lock()
	defer f.mu.Unlock()
	posts, _ := f.snapshotLocked()
	return posts
}

// HasMore reports whether a further page likely exists.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

func (f *Feed) snapshotLocked() ([]*entity.BlogPost, bool) {
	posts := make([]*entity.BlogPost, len(f.posts))
	copy(posts, f.posts)
	return posts, f.hasMore
}
