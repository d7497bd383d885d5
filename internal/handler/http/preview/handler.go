// Package preview provides the HTTP handler for the crawler-facing
// social-preview endpoint mounted at the server root.
package preview

import (
	"context"
	"log"
	"net/http"

	"savvy-blog/internal/observability/metrics"
	previewUC "savvy-blog/internal/usecase/preview"
)

// Renderer produces a preview result for a request path.
type Renderer interface {
	Render(ctx context.Context, path string) previewUC.Result
}

// Handler serves social-preview documents for blog post paths and a
// pass-through response for everything else. The renderer never fails, so
// the handler simply writes whatever result it produces.
type Handler struct {
	Renderer Renderer
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result := h.Renderer.Render(r.Context(), r.URL.Path)

	if result.Kind == previewUC.Document {
		metrics.RecordPostServed("preview")
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(result.Status)
	if _, err := w.Write([]byte(result.Body)); err != nil {
		log.Printf("preview: failed to write response: %v", err)
	}
}
