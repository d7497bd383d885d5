// Package preview renders the social-preview HTML document served to
// link-unfurling crawlers on blog post paths. Paths outside the blog are
// passed through so the hosting layer serves the client application instead.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"savvy-blog/internal/domain/entity"
	"savvy-blog/internal/repository"
	"savvy-blog/internal/resilience/circuitbreaker"
)

// blogPrefix is the path prefix that makes a request eligible for preview
// rendering.
const blogPrefix = "/blog/"

// Kind classifies a render outcome.
type Kind int

const (
	// PassThrough means the path is not a blog post path; the caller must
	// route the original request to the client application unmodified.
	PassThrough Kind = iota

	// NotFound means no post has the extracted slug. Served as a 404 so the
	// hosting layer's fallback rule hydrates the client application instead.
	NotFound

	// ServerError means the store lookup itself failed.
	ServerError

	// Document means the preview document was rendered.
	Document
)

func (k Kind) String() string {
	switch k {
	case PassThrough:
		return "pass_through"
	case NotFound:
		return "not_found"
	case ServerError:
		return "server_error"
	case Document:
		return "document"
	default:
		return "unknown"
	}
}

// Result is the outcome of one render call, ready to be written as an HTTP
// response.
type Result struct {
	Kind        Kind
	Status      int
	ContentType string
	Body        string
}

// Store is the single read the renderer needs from the post repository.
type Store interface {
	GetPreviewBySlug(ctx context.Context, slug string) (*repository.PostPreview, error)
}

// Config holds the renderer's site-level settings.
type Config struct {
	// Origin is the canonical site origin used to build absolute URLs.
	// The Host header of the inbound request is deliberately not trusted.
	Origin string

	// BundlePath is the client application entry bundle referenced from the
	// rendered document so a real browser can still hydrate the full app.
	BundlePath string

	// DefaultMetaImage is used when a post has no meta image of its own.
	DefaultMetaImage string
}

// Renderer produces preview documents for crawler requests.
// Stateless per request: one inbound request triggers at most one store read.
type Renderer struct {
	store   Store
	breaker *circuitbreaker.CircuitBreaker
	cfg     Config
	logger  *slog.Logger
	tmpl    *template.Template
}

// documentTemplate is the complete document served to a crawler. Interpolated
// values pass through html/template's contextual escaping, so
// HTML-significant characters in post fields cannot break the markup.
const documentTemplate = `<!doctype html>
<html lang="en">
<head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>{{.Title}}</title>
    <meta name="description" content="{{.Description}}" />
    <meta property="og:url" content="{{.AbsoluteURL}}" />
    <meta property="og:title" content="{{.Title}}" />
    <meta property="og:description" content="{{.Description}}" />
    <meta property="og:image" content="{{.ImageURL}}" />
    <meta property="og:type" content="article" />
    <meta name="twitter:card" content="summary_large_image" />
    <meta name="twitter:title" content="{{.Title}}" />
    <meta name="twitter:description" content="{{.Description}}" />
    <meta name="twitter:image" content="{{.ImageURL}}" />
</head>
<body>
    <div id="root"></div>
    <script type="module" src="{{.BundlePath}}"></script>
</body>
</html>`

type documentData struct {
	Title       string
	Description string
	ImageURL    string
	AbsoluteURL string
	BundlePath  string
}

// NewRenderer creates a preview renderer over the given store.
func NewRenderer(store Store, cfg Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		store:   store,
		breaker: circuitbreaker.New(circuitbreaker.PreviewStoreConfig()),
		cfg:     cfg,
		logger:  logger,
		tmpl:    template.Must(template.New("preview").Parse(documentTemplate)),
	}
}

// ExtractSlug returns the slug for a blog post path and whether the path is
// a blog post path at all. The slug is the segment between the blog prefix
// and the next slash; further segments are ignored. A bare "/blog/" is not
// a post path.
func ExtractSlug(path string) (string, bool) {
	if !strings.HasPrefix(path, blogPrefix) || len(path) <= len(blogPrefix) {
		return "", false
	}
	rest := path[len(blogPrefix):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}

// Render decides whether the request path addresses a blog post and, if so,
// produces the preview document for it. Every failure is converted into a
// Result; Render never panics and never returns an error to the caller.
func (r *Renderer) Render(ctx context.Context, path string) Result {
	slug, ok := ExtractSlug(path)
	if !ok {
		recordOutcome(PassThrough)
		return Result{
			Kind:        PassThrough,
			Status:      200,
			ContentType: "text/plain; charset=utf-8",
			Body:        "Not a blog path.",
		}
	}

	// A slug outside the URL-safe charset cannot match any stored post, so
	// skip the store read.
	if err := entity.ValidateSlug(slug); err != nil {
		recordOutcome(NotFound)
		return r.notFound()
	}

	value, err := r.breaker.Execute(func() (interface{}, error) {
		return r.store.GetPreviewBySlug(ctx, slug)
	})
	if err != nil {
		r.logger.Error("preview store lookup failed",
			slog.String("slug", slug),
			slog.Any("error", err))
		recordOutcome(ServerError)
		return Result{
			Kind:        ServerError,
			Status:      500,
			ContentType: "application/json",
			Body:        `{"error": "Internal server error."}`,
		}
	}

	post := value.(*repository.PostPreview)
	if post == nil {
		r.logger.Info("preview slug not found", slog.String("slug", slug))
		recordOutcome(NotFound)
		return r.notFound()
	}

	imageURL := post.MetaImageURL
	if imageURL == "" {
		imageURL = r.cfg.DefaultMetaImage
	}

	var buf bytes.Buffer
	err = r.tmpl.Execute(&buf, documentData{
		Title:       post.Title,
		Description: post.Description,
		ImageURL:    imageURL,
		AbsoluteURL: r.cfg.Origin + path,
		BundlePath:  r.cfg.BundlePath,
	})
	if err != nil {
		r.logger.Error("preview template execution failed",
			slog.String("slug", slug),
			slog.Any("error", err))
		recordOutcome(ServerError)
		return Result{
			Kind:        ServerError,
			Status:      500,
			ContentType: "application/json",
			Body:        fmt.Sprintf(`{"error": %q}`, "Internal server error."),
		}
	}

	recordOutcome(Document)
	return Result{
		Kind:        Document,
		Status:      200,
		ContentType: "text/html; charset=utf-8",
		Body:        buf.String(),
	}
}

func (r *Renderer) notFound() Result {
	return Result{
		Kind:        NotFound,
		Status:      404,
		ContentType: "text/plain; charset=utf-8",
		Body:        "Post not found.",
	}
}
