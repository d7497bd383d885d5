package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"savvy-blog/internal/domain/entity"
	"savvy-blog/internal/observability/metrics"
	"savvy-blog/internal/repository"
	"savvy-blog/internal/resilience/circuitbreaker"
)

// defaultQueryTimeout bounds every store read. The preview renderer runs in a
// per-request execution environment and must never hang on the database.
const defaultQueryTimeout = 5 * time.Second

// PostRepo reads blog posts from Postgres. All query paths run through a
// circuit breaker so a dead database fails fast instead of piling up
// connections.
type PostRepo struct {
	db           *circuitbreaker.DBCircuitBreaker
	timeout      time.Duration
	queryBuilder *PostQueryBuilder
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return NewPostRepoWithTimeout(db, defaultQueryTimeout)
}

// NewPostRepoWithTimeout creates a PostRepo with a custom per-query timeout.
func NewPostRepoWithTimeout(db *sql.DB, timeout time.Duration) *PostRepo {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &PostRepo{
		db:           circuitbreaker.NewDBCircuitBreaker(db),
		timeout:      timeout,
		queryBuilder: NewPostQueryBuilder(),
	}
}

var _ repository.PostRepository = (*PostRepo)(nil)

// ListPage retrieves one page of posts ordered by created_at DESC, id DESC.
// The id tie-break keeps pagination stable when timestamps collide, so a row
// is never duplicated or skipped across a page boundary.
func (repo *PostRepo) ListPage(ctx context.Context, offset, limit int, filter repository.ListFilter) ([]*entity.BlogPost, error) {
	defer func(start time.Time) { metrics.RecordDBQuery("list_page", time.Since(start)) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	whereClause, args := repo.queryBuilder.BuildCategoryFilter(filter.CategorySlug, 1)
	paramIndex := len(args) + 1
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
SELECT p.id, p.slug, p.title, p.description, p.featured_image_url, p.author_name, p.created_at
FROM blog_posts p
%s
ORDER BY p.created_at DESC, p.id DESC
LIMIT $%d OFFSET $%d`, whereClause, paramIndex, paramIndex+1)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*entity.BlogPost, 0, limit)
	for rows.Next() {
		var post entity.BlogPost
		var featuredImage, authorName sql.NullString
		if err := rows.Scan(&post.ID, &post.Slug, &post.Title, &post.Description,
			&featuredImage, &authorName, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListPage: Scan: %w", err)
		}
		post.FeaturedImageURL = featuredImage.String
		post.AuthorName = authorName.String
		post.Categories = []entity.BlogCategory{}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPage: rows.Err: %w", err)
	}

	if err := repo.attachCategories(ctx, posts); err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	return posts, nil
}

// attachCategories expands the category sets for the given posts with a
// single query on the join table. Posts without links keep an empty set.
func (repo *PostRepo) attachCategories(ctx context.Context, posts []*entity.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}

	byID := make(map[int64]*entity.BlogPost, len(posts))
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	query, args := repo.queryBuilder.BuildCategoryLinksQuery(ids)
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("attachCategories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	seen := make(map[int64]map[int64]struct{}, len(posts))
	for rows.Next() {
		var postID int64
		var cat entity.BlogCategory
		if err := rows.Scan(&postID, &cat.ID, &cat.Name, &cat.Slug); err != nil {
			return fmt.Errorf("attachCategories: Scan: %w", err)
		}
		post, ok := byID[postID]
		if !ok {
			continue
		}
		if seen[postID] == nil {
			seen[postID] = make(map[int64]struct{})
		}
		if _, dup := seen[postID][cat.ID]; dup {
			continue
		}
		seen[postID][cat.ID] = struct{}{}
		post.Categories = append(post.Categories, cat)
	}
	return rows.Err()
}

// CountPosts returns the total number of posts in the store.
func (repo *PostRepo) CountPosts(ctx context.Context) (int64, error) {
	defer func(start time.Time) { metrics.RecordDBQuery("count_posts", time.Since(start)) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	const query = `SELECT COUNT(*) FROM blog_posts`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountPosts: %w", err)
	}
	return count, nil
}

// GetBySlug retrieves a single post with its content body and category set.
// Returns (nil, nil) when no post has the given slug.
func (repo *PostRepo) GetBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	defer func(start time.Time) { metrics.RecordDBQuery("get_post_by_slug", time.Since(start)) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	const query = `
SELECT id, slug, title, description, content, featured_image_url, meta_image_url, author_name, created_at
FROM blog_posts
WHERE slug = $1
LIMIT 1`
	var post entity.BlogPost
	var featuredImage, metaImage, authorName sql.NullString
	err := repo.db.QueryRowContext(ctx, query, slug).
		Scan(&post.ID, &post.Slug, &post.Title, &post.Description, &post.Content,
			&featuredImage, &metaImage, &authorName, &post.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	post.FeaturedImageURL = featuredImage.String
	post.MetaImageURL = metaImage.String
	post.AuthorName = authorName.String
	post.Categories = []entity.BlogCategory{}

	if err := repo.attachCategories(ctx, []*entity.BlogPost{&post}); err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return &post, nil
}

// GetPreviewBySlug retrieves only the fields needed to render preview tags.
// Returns (nil, nil) when no post has the given slug.
func (repo *PostRepo) GetPreviewBySlug(ctx context.Context, slug string) (*repository.PostPreview, error) {
	defer func(start time.Time) { metrics.RecordDBQuery("get_preview_by_slug", time.Since(start)) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	const query = `
SELECT title, description, meta_image_url
FROM blog_posts
WHERE slug = $1
LIMIT 1`
	var preview repository.PostPreview
	var metaImage sql.NullString
	err := repo.db.QueryRowContext(ctx, query, slug).
		Scan(&preview.Title, &preview.Description, &metaImage)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetPreviewBySlug: %w", err)
	}
	preview.MetaImageURL = metaImage.String
	return &preview, nil
}

// ListRecent retrieves the newest posts excluding the one being viewed.
// Only the sidebar fields are selected.
func (repo *PostRepo) ListRecent(ctx context.Context, excludeSlug string, limit int) ([]*entity.BlogPost, error) {
	defer func(start time.Time) { metrics.RecordDBQuery("list_recent", time.Since(start)) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	const query = `
SELECT id, slug, title, featured_image_url
FROM blog_posts
WHERE slug <> $1
ORDER BY created_at DESC, id DESC
LIMIT $2`
	rows, err := repo.db.QueryContext(ctx, query, excludeSlug, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*entity.BlogPost, 0, limit)
	for rows.Next() {
		var post entity.BlogPost
		var featuredImage sql.NullString
		if err := rows.Scan(&post.ID, &post.Slug, &post.Title, &featuredImage); err != nil {
			return nil, fmt.Errorf("ListRecent: Scan: %w", err)
		}
		post.FeaturedImageURL = featuredImage.String
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

// ListRelatedCandidates retrieves the oversampled candidate window for
// related-post selection. Ordered ascending so the window stays stable
// between calls; the random draw happens in the use case layer.
func (repo *PostRepo) ListRelatedCandidates(ctx context.Context, excludeSlug string, limit int) ([]*entity.BlogPost, error) {
	defer func(start time.Time) { metrics.RecordDBQuery("list_related_candidates", time.Since(start)) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	const query = `
SELECT id, slug, title, description, featured_image_url, author_name, created_at
FROM blog_posts
WHERE slug <> $1
ORDER BY created_at ASC, id ASC
LIMIT $2`
	rows, err := repo.db.QueryContext(ctx, query, excludeSlug, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRelatedCandidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*entity.BlogPost, 0, limit)
	for rows.Next() {
		var post entity.BlogPost
		var featuredImage, authorName sql.NullString
		if err := rows.Scan(&post.ID, &post.Slug, &post.Title, &post.Description,
			&featuredImage, &authorName, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListRelatedCandidates: Scan: %w", err)
		}
		post.FeaturedImageURL = featuredImage.String
		post.AuthorName = authorName.String
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

// ListPublished retrieves the lightweight rows used to build the sitemap
// and RSS snapshots, newest first.
func (repo *PostRepo) ListPublished(ctx context.Context) ([]*entity.BlogPost, error) {
	defer func(start time.Time) { metrics.RecordDBQuery("list_published", time.Since(start)) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	const query = `
SELECT slug, title, description, created_at
FROM blog_posts
ORDER BY created_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListPublished: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*entity.BlogPost, 0, 100)
	for rows.Next() {
		var post entity.BlogPost
		if err := rows.Scan(&post.Slug, &post.Title, &post.Description, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListPublished: Scan: %w", err)
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}
