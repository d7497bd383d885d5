package blog

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"savvy-blog/internal/common/pagination"
	"savvy-blog/internal/domain/entity"
	"savvy-blog/internal/repository"
)

const (
	// recentLimit is the number of posts shown in the "recent" sidebar rail.
	recentLimit = 10

	// relatedCount is the number of related posts shown under a post.
	relatedCount = 3

	// relatedCandidateLimit caps the candidate window the related picker
	// draws from. Keeps the query bounded on large archives.
	relatedCandidateLimit = 100
)

// Service provides read use cases over published blog content.
// It handles business logic for post queries and delegates persistence to the repositories.
type Service struct {
	Posts      repository.PostRepository
	Categories repository.CategoryRepository
	PageSize   int

	// newRand supplies the randomness for related-post selection.
	// Swappable so tests can pin the draw.
	newRand func() *rand.Rand
}

// NewService creates a blog service with the given repositories and page size.
func NewService(posts repository.PostRepository, categories repository.CategoryRepository, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = pagination.DefaultConfig().PageSize
	}
	return &Service{
		Posts:      posts,
		Categories: categories,
		PageSize:   pageSize,
		newRand: func() *rand.Rand {
			// #nosec G404 -- related-post selection is cosmetic, not security sensitive.
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Page is one page of the post listing.
type Page struct {
	Posts   []*entity.BlogPost
	HasMore bool
}

// SidebarResult bundles the two post rails shown next to a single post.
type SidebarResult struct {
	Recent  []*entity.BlogPost
	Related []*entity.BlogPost
}

// ListCategories retrieves all categories for the filter bar.
func (s *Service) ListCategories(ctx context.Context) ([]*entity.BlogCategory, error) {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListPosts retrieves one zero-based page of posts, optionally filtered by
// category slug. HasMore is judged from the returned page size: a full page
// means a further page likely exists. An unknown category slug is not an
// error; it simply matches no posts.
func (s *Service) ListPosts(ctx context.Context, params pagination.Params) (*Page, error) {
	offset := pagination.CalculateOffset(params.Page, s.PageSize)

	posts, err := s.Posts.ListPage(ctx, offset, s.PageSize, repository.ListFilter{
		CategorySlug: params.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return &Page{
		Posts:   posts,
		HasMore: pagination.HasMore(len(posts), s.PageSize),
	}, nil
}

// GetPostBySlug retrieves a single post with its full content body.
// Returns ErrInvalidSlug if the slug fails validation.
// Returns ErrPostNotFound if no post has the given slug.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	if err := entity.ValidateSlug(slug); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlug, err)
	}

	post, err := s.Posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// RecentPosts retrieves the newest posts, excluding the one being viewed.
func (s *Service) RecentPosts(ctx context.Context, excludeSlug string) ([]*entity.BlogPost, error) {
	if err := entity.ValidateSlug(excludeSlug); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlug, err)
	}

	posts, err := s.Posts.ListRecent(ctx, excludeSlug, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	return posts, nil
}

// RelatedPosts draws up to relatedCount random posts from the candidate
// window, excluding the current post and any ids in excludeIDs. Fewer than
// relatedCount candidates means fewer related posts, never an error. The
// rail is decorative, so a failed candidate read logs a diagnostic and
// yields an empty rail instead of an error.
func (s *Service) RelatedPosts(ctx context.Context, excludeSlug string, excludeIDs []int64) ([]*entity.BlogPost, error) {
	if err := entity.ValidateSlug(excludeSlug); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlug, err)
	}

	candidates, err := s.Posts.ListRelatedCandidates(ctx, excludeSlug, relatedCandidateLimit)
	if err != nil {
		slog.Warn("related rail unavailable",
			slog.String("slug", excludeSlug),
			slog.Any("error", err))
		return []*entity.BlogPost{}, nil
	}

	exclude := make(map[int64]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		exclude[id] = struct{}{}
	}

	return SamplePosts(s.newRand(), candidates, exclude, relatedCount), nil
}

// Sidebar retrieves the recent and related rails for a post. The two store
// reads run concurrently and each rail is best effort: a failed read logs a
// diagnostic and leaves its rail empty rather than failing the sidebar.
// Related posts are drawn excluding everything already shown in the recent
// rail so the sidebar never repeats a post.
func (s *Service) Sidebar(ctx context.Context, slug string) (*SidebarResult, error) {
	if err := entity.ValidateSlug(slug); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlug, err)
	}

	var recent, candidates []*entity.BlogPost

	// A zero-value group shares no cancellation: one rail failing must
	// not abort the other.
	var g errgroup.Group
	g.Go(func() error {
		posts, err := s.Posts.ListRecent(ctx, slug, recentLimit)
		if err != nil {
			slog.Warn("recent rail unavailable",
				slog.String("slug", slug),
				slog.Any("error", err))
			return nil
		}
		recent = posts
		return nil
	})
	g.Go(func() error {
		posts, err := s.Posts.ListRelatedCandidates(ctx, slug, relatedCandidateLimit)
		if err != nil {
			slog.Warn("related rail unavailable",
				slog.String("slug", slug),
				slog.Any("error", err))
			return nil
		}
		candidates = posts
		return nil
	})
	_ = g.Wait()

	exclude := make(map[int64]struct{}, len(recent))
	for _, p := range recent {
		exclude[p.ID] = struct{}{}
	}

	return &SidebarResult{
		Recent:  recent,
		Related: SamplePosts(s.newRand(), candidates, exclude, relatedCount),
	}, nil
}
