package blog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"savvy-blog/internal/common/pagination"
	"savvy-blog/internal/domain/entity"
	"savvy-blog/internal/repository"
	blogUC "savvy-blog/internal/usecase/blog"
)

/* ─── stubs ─── */

type stubPostRepo struct {
	posts   []*entity.BlogPost
	listErr error
	getErr  error
}

func (s *stubPostRepo) ListPage(_ context.Context, offset, limit int, filter repository.ListFilter) ([]*entity.BlogPost, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	filtered := s.posts
	if filter.CategorySlug != "" {
		filtered = nil
		for _, p := range s.posts {
			for _, c := range p.Categories {
				if c.Slug == filter.CategorySlug {
					filtered = append(filtered, p)
					break
				}
			}
		}
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (s *stubPostRepo) CountPosts(context.Context) (int64, error) {
	return int64(len(s.posts)), nil
}

func (s *stubPostRepo) GetBySlug(_ context.Context, slug string) (*entity.BlogPost, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubPostRepo) GetPreviewBySlug(_ context.Context, slug string) (*repository.PostPreview, error) {
	for _, p := range s.posts {
		if p.Slug == slug {
			return &repository.PostPreview{Title: p.Title, Description: p.Description, MetaImageURL: p.MetaImageURL}, nil
		}
	}
	return nil, nil
}

func (s *stubPostRepo) ListRecent(_ context.Context, excludeSlug string, limit int) ([]*entity.BlogPost, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*entity.BlogPost
	for _, p := range s.posts {
		if p.Slug == excludeSlug {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubPostRepo) ListRelatedCandidates(_ context.Context, excludeSlug string, limit int) ([]*entity.BlogPost, error) {
	return s.ListRecent(context.Background(), excludeSlug, limit)
}

func (s *stubPostRepo) ListPublished(context.Context) ([]*entity.BlogPost, error) {
	return s.posts, nil
}

type stubCategoryRepo struct {
	categories []*entity.BlogCategory
	err        error
}

func (s *stubCategoryRepo) List(context.Context) ([]*entity.BlogCategory, error) {
	return s.categories, s.err
}

func makePosts(n int) []*entity.BlogPost {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]*entity.BlogPost, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, &entity.BlogPost{
			ID:               int64(n - i),
			Slug:             fmt.Sprintf("post-%d", n-i),
			Title:            fmt.Sprintf("Post %d", n-i),
			Description:      "a description",
			FeaturedImageURL: "https://cdn.example.com/img.png",
			AuthorName:       "Dana",
			CreatedAt:        base.Add(-time.Duration(i) * time.Hour),
			Categories:       []entity.BlogCategory{{ID: 1, Name: "Growth", Slug: "growth"}},
		})
	}
	return posts
}

func newTestMux(repo *stubPostRepo, cats *stubCategoryRepo) *http.ServeMux {
	svc := blogUC.NewService(repo, cats, 9)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	mux := http.NewServeMux()
	Register(mux, svc, pagination.DefaultConfig(), logger)
	return mux
}

/* ─── listing ─── */

func TestListHandler(t *testing.T) {
	mux := newTestMux(&stubPostRepo{posts: makePosts(12)}, &stubCategoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var response pagination.Response[PostSummaryDTO]
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(response.Data) != 9 {
		t.Errorf("got %d posts, want 9", len(response.Data))
	}
	if !response.Pagination.HasMore {
		t.Error("expected has_more on a full first page")
	}
	if response.Pagination.Page != 0 {
		t.Errorf("got page %d, want 0", response.Pagination.Page)
	}
	if response.Data[0].Slug != "post-12" {
		t.Errorf("got first slug %q, want newest post first", response.Data[0].Slug)
	}
	if len(response.Data[0].Categories) != 1 || response.Data[0].Categories[0].Slug != "growth" {
		t.Errorf("expected category set on listing items, got %+v", response.Data[0].Categories)
	}
}

func TestListHandler_SecondPage(t *testing.T) {
	mux := newTestMux(&stubPostRepo{posts: makePosts(12)}, &stubCategoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts?page=1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var response pagination.Response[PostSummaryDTO]
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(response.Data) != 3 {
		t.Errorf("got %d posts, want 3", len(response.Data))
	}
	if response.Pagination.HasMore {
		t.Error("short page should not report has_more")
	}
}

func TestListHandler_CategoryFilter(t *testing.T) {
	posts := makePosts(5)
	posts[0].Categories = []entity.BlogCategory{{ID: 2, Name: "Design", Slug: "design"}}
	mux := newTestMux(&stubPostRepo{posts: posts}, &stubCategoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts?category=design", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var response pagination.Response[PostSummaryDTO]
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(response.Data) != 1 {
		t.Fatalf("got %d posts, want 1", len(response.Data))
	}
	if response.Data[0].Slug != posts[0].Slug {
		t.Errorf("got slug %q, want %q", response.Data[0].Slug, posts[0].Slug)
	}
}

func TestListHandler_InvalidPage(t *testing.T) {
	mux := newTestMux(&stubPostRepo{posts: makePosts(3)}, &stubCategoryRepo{})

	for _, query := range []string{"page=-1", "page=abc", "page=1.5"} {
		req := httptest.NewRequest(http.MethodGet, "/api/blog/posts?"+query, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got status %d, want 400", query, rec.Code)
		}
	}
}

func TestListHandler_RepositoryError(t *testing.T) {
	mux := newTestMux(&stubPostRepo{listErr: errors.New("pq: relation does not exist")}, &stubCategoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Errorf("database detail leaked to client: %q", body["error"])
	}
}

/* ─── detail ─── */

func TestGetHandler(t *testing.T) {
	posts := makePosts(3)
	posts[0].Content = "<p>full body</p>"
	posts[0].MetaImageURL = "https://cdn.example.com/meta.png"
	mux := newTestMux(&stubPostRepo{posts: posts}, &stubCategoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts/"+posts[0].Slug, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var dto PostDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if dto.Slug != posts[0].Slug {
		t.Errorf("got slug %q, want %q", dto.Slug, posts[0].Slug)
	}
	if dto.Content != "<p>full body</p>" {
		t.Errorf("got content %q, want full body", dto.Content)
	}
	if dto.MetaImageURL != "https://cdn.example.com/meta.png" {
		t.Errorf("got meta image %q", dto.MetaImageURL)
	}
}

func TestGetHandler_NotFound(t *testing.T) {
	mux := newTestMux(&stubPostRepo{posts: makePosts(2)}, &stubCategoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts/no-such-post", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
}

func TestGetHandler_InvalidSlug(t *testing.T) {
	mux := newTestMux(&stubPostRepo{posts: makePosts(2)}, &stubCategoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts/Bad%20Slug%21", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
}

/* ─── sidebar ─── */

func TestSidebarHandler(t *testing.T) {
	mux := newTestMux(&stubPostRepo{posts: makePosts(20)}, &stubCategoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts/post-20/sidebar", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var dto SidebarDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(dto.Recent) != 10 {
		t.Errorf("got %d recent posts, want 10", len(dto.Recent))
	}
	for _, p := range dto.Recent {
		if p.Slug == "post-20" {
			t.Error("recent rail includes the viewed post")
		}
	}

	recentIDs := make(map[int64]struct{}, len(dto.Recent))
	for _, p := range dto.Recent {
		recentIDs[p.ID] = struct{}{}
	}
	for _, p := range dto.Related {
		if _, dup := recentIDs[p.ID]; dup {
			t.Errorf("related post %d repeats the recent rail", p.ID)
		}
	}
}

func TestSidebarHandler_DatabaseErrorDegradesToEmptyRails(t *testing.T) {
	mux := newTestMux(&stubPostRepo{posts: makePosts(5), listErr: errors.New("pq: timeout")}, &stubCategoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts/post-5/sidebar", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200 with empty rails", rec.Code)
	}

	var dto SidebarDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(dto.Recent) != 0 || len(dto.Related) != 0 {
		t.Errorf("rails should be empty on store failure, got %d/%d", len(dto.Recent), len(dto.Related))
	}
}

func TestSidebarHandler_InvalidSlug(t *testing.T) {
	mux := newTestMux(&stubPostRepo{posts: makePosts(5)}, &stubCategoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/posts/Bad%20Slug/sidebar", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
}

/* ─── categories ─── */

func TestCategoriesHandler(t *testing.T) {
	cats := &stubCategoryRepo{categories: []*entity.BlogCategory{
		{ID: 2, Name: "Design", Slug: "design"},
		{ID: 1, Name: "Growth", Slug: "growth"},
	}}
	mux := newTestMux(&stubPostRepo{}, cats)

	req := httptest.NewRequest(http.MethodGet, "/api/blog/categories", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var dtos []CategoryDTO
	if err := json.NewDecoder(rec.Body).Decode(&dtos); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("got %d categories, want 2", len(dtos))
	}
	if dtos[0].Name != "Design" {
		t.Errorf("got first category %q, want repository order preserved", dtos[0].Name)
	}
}

func TestCategoriesHandler_Error(t *testing.T) {
	mux := newTestMux(&stubPostRepo{}, &stubCategoryRepo{err: errors.New("pq: down")})

	req := httptest.NewRequest(http.MethodGet, "/api/blog/categories", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("got status %d, want 500", rec.Code)
	}
}
