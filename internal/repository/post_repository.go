package repository

import (
	"context"

	"savvy-blog/internal/domain/entity"
)

// PostPreview carries the subset of post fields needed to render
// social-preview metadata for crawlers.
type PostPreview struct {
	Title        string
	Description  string
	MetaImageURL string
}

// ListFilter narrows a paginated listing to a single category.
// The zero value means no filtering.
type ListFilter struct {
	CategorySlug string
}

type PostRepository interface {
	// ListPage retrieves one page of posts ordered by created_at DESC with an
	// id DESC tie-break, including each post's category set. Posts without
	// category links are still returned with an empty set. Content bodies are
	// omitted.
	// Parameters:
	//   - offset: number of rows to skip (page * page size)
	//   - limit: maximum number of rows to return
	ListPage(ctx context.Context, offset, limit int, filter ListFilter) ([]*entity.BlogPost, error)
	// CountPosts returns the total number of posts in the store.
	// Used for operational metrics, not for pagination decisions.
	CountPosts(ctx context.Context) (int64, error)
	// GetBySlug retrieves a single post by its unique slug, including the
	// content body and category set.
	// Returns (nil, nil) if no post has the given slug.
	GetBySlug(ctx context.Context, slug string) (*entity.BlogPost, error)
	// GetPreviewBySlug retrieves only the preview metadata for a post.
	// Returns (nil, nil) if no post has the given slug.
	GetPreviewBySlug(ctx context.Context, slug string) (*PostPreview, error)
	// ListRecent retrieves up to limit posts ordered by created_at DESC,
	// excluding the post with excludeSlug. Only sidebar fields are populated
	// (id, slug, title, featured image).
	ListRecent(ctx context.Context, excludeSlug string, limit int) ([]*entity.BlogPost, error)
	// ListRelatedCandidates retrieves up to limit posts excluding excludeSlug,
	// ordered by created_at ASC so the candidate window is stable between
	// calls. Callers sample from the result.
	ListRelatedCandidates(ctx context.Context, excludeSlug string, limit int) ([]*entity.BlogPost, error)
	// ListPublished retrieves slug, title, description and created_at for all
	// posts, newest first. Used to build the sitemap and RSS snapshots.
	ListPublished(ctx context.Context) ([]*entity.BlogPost, error)
}
