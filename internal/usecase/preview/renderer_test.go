package preview_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"savvy-blog/internal/repository"
	"savvy-blog/internal/usecase/preview"
)

type stubStore struct {
	previews map[string]*repository.PostPreview
	err      error
	calls    int
}

func (s *stubStore) GetPreviewBySlug(_ context.Context, slug string) (*repository.PostPreview, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.previews[slug], nil
}

func testConfig() preview.Config {
	return preview.Config{
		Origin:           "https://sosavvy.so",
		BundlePath:       "/src/main.tsx",
		DefaultMetaImage: "https://sosavvy.so/og-default.png",
	}
}

func newRenderer(store *stubStore) *preview.Renderer {
	return preview.NewRenderer(store, testConfig(), slog.Default())
}

func TestExtractSlug(t *testing.T) {
	tests := []struct {
		path     string
		wantSlug string
		wantOK   bool
	}{
		{"/", "", false},
		{"/about", "", false},
		{"/blog", "", false},
		{"/blog/", "", false},
		{"/blog/my-post", "my-post", true},
		{"/blog/my-post/", "my-post", true},
		{"/blog/my-post/extra/ignored", "my-post", true},
		{"/blogging/hello", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			slug, ok := preview.ExtractSlug(tt.path)
			if ok != tt.wantOK || slug != tt.wantSlug {
				t.Errorf("ExtractSlug(%q) = (%q, %v), want (%q, %v)",
					tt.path, slug, ok, tt.wantSlug, tt.wantOK)
			}
		})
	}
}

func TestRender_PassThrough(t *testing.T) {
	store := &stubStore{}
	r := newRenderer(store)

	for _, path := range []string{"/", "/pricing", "/blog", "/blog/"} {
		got := r.Render(context.Background(), path)
		if got.Kind != preview.PassThrough {
			t.Errorf("path %q: kind = %v, want PassThrough", path, got.Kind)
		}
		if got.Status != 200 || got.Body != "Not a blog path." {
			t.Errorf("path %q: status=%d body=%q", path, got.Status, got.Body)
		}
	}
	if store.calls != 0 {
		t.Errorf("pass-through paths hit the store %d times", store.calls)
	}
}

func TestRender_Document(t *testing.T) {
	store := &stubStore{previews: map[string]*repository.PostPreview{
		"hello": {
			Title:        "Hello World",
			Description:  "An introduction.",
			MetaImageURL: "https://cdn/hello.png",
		},
	}}
	r := newRenderer(store)

	got := r.Render(context.Background(), "/blog/hello")
	if got.Kind != preview.Document || got.Status != 200 {
		t.Fatalf("kind=%v status=%d", got.Kind, got.Status)
	}
	if !strings.HasPrefix(got.ContentType, "text/html") {
		t.Errorf("content type = %q", got.ContentType)
	}
	for _, want := range []string{
		"<title>Hello World</title>",
		`<meta property="og:url" content="https://sosavvy.so/blog/hello" />`,
		`<meta property="og:title" content="Hello World" />`,
		`<meta property="og:image" content="https://cdn/hello.png" />`,
		`<meta name="twitter:card" content="summary_large_image" />`,
		`<div id="root"></div>`,
		`<script type="module" src="/src/main.tsx"></script>`,
	} {
		if !strings.Contains(got.Body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if store.calls != 1 {
		t.Errorf("store hit %d times, want 1", store.calls)
	}
}

func TestRender_DeepPathUsesFirstSegment(t *testing.T) {
	store := &stubStore{previews: map[string]*repository.PostPreview{
		"my-post": {Title: "Mine", Description: "d"},
	}}
	r := newRenderer(store)

	got := r.Render(context.Background(), "/blog/my-post/extra/ignored")
	if got.Kind != preview.Document {
		t.Fatalf("kind = %v, want Document", got.Kind)
	}
	// The canonical URL keeps the original request path
	if !strings.Contains(got.Body, `content="https://sosavvy.so/blog/my-post/extra/ignored"`) {
		t.Error("og:url does not carry the original path")
	}
}

func TestRender_NotFound(t *testing.T) {
	r := newRenderer(&stubStore{})

	got := r.Render(context.Background(), "/blog/missing")
	if got.Kind != preview.NotFound || got.Status != 404 {
		t.Fatalf("kind=%v status=%d, want NotFound 404", got.Kind, got.Status)
	}
}

func TestRender_InvalidSlugSkipsStore(t *testing.T) {
	store := &stubStore{}
	r := newRenderer(store)

	got := r.Render(context.Background(), "/blog/Not%20A%20Slug!")
	if got.Kind != preview.NotFound {
		t.Fatalf("kind = %v, want NotFound", got.Kind)
	}
	if store.calls != 0 {
		t.Errorf("invalid slug hit the store %d times", store.calls)
	}
}

func TestRender_StoreFailure(t *testing.T) {
	r := newRenderer(&stubStore{err: errors.New("connection refused")})

	got := r.Render(context.Background(), "/blog/hello")
	if got.Kind != preview.ServerError || got.Status != 500 {
		t.Fatalf("kind=%v status=%d, want ServerError 500", got.Kind, got.Status)
	}
	if got.ContentType != "application/json" {
		t.Errorf("content type = %q", got.ContentType)
	}
	if got.Body != `{"error": "Internal server error."}` {
		t.Errorf("body = %q", got.Body)
	}
	if strings.Contains(got.Body, "connection refused") {
		t.Error("internal error detail leaked to the client")
	}
}

func TestRender_EscapesMarkupSignificantValues(t *testing.T) {
	store := &stubStore{previews: map[string]*repository.PostPreview{
		"tricky": {
			Title:        `A <b>"bold"</b> & daring title`,
			Description:  `"><script>alert(1)</script>`,
			MetaImageURL: "https://cdn/x.png",
		},
	}}
	r := newRenderer(store)

	got := r.Render(context.Background(), "/blog/tricky")
	if got.Kind != preview.Document {
		t.Fatalf("kind = %v, want Document", got.Kind)
	}
	if strings.Contains(got.Body, "<script>alert(1)</script>") {
		t.Error("unescaped script tag in rendered document")
	}
	if strings.Contains(got.Body, `content=""><script>`) {
		t.Error("attribute breakout in rendered document")
	}
	if !strings.Contains(got.Body, "&lt;b&gt;") {
		t.Error("title markup not escaped")
	}
}

func TestRender_DefaultMetaImage(t *testing.T) {
	store := &stubStore{previews: map[string]*repository.PostPreview{
		"bare": {Title: "Bare", Description: "d"},
	}}
	r := newRenderer(store)

	got := r.Render(context.Background(), "/blog/bare")
	if !strings.Contains(got.Body, `content="https://sosavvy.so/og-default.png"`) {
		t.Error("default meta image not applied")
	}
}
