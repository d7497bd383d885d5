package blog

import (
	"errors"
	"net/http"

	"savvy-blog/internal/handler/http/respond"
	"savvy-blog/internal/observability/metrics"
	blogUC "savvy-blog/internal/usecase/blog"
)

// GetHandler serves a single post, including its content body.
type GetHandler struct {
	Svc *blogUC.Service
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	post, err := h.Svc.GetPostBySlug(r.Context(), slug)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, blogUC.ErrInvalidSlug) {
			code = http.StatusBadRequest
		} else if errors.Is(err, blogUC.ErrPostNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	metrics.RecordPostServed("detail")
	respond.JSON(w, http.StatusOK, toPostDTO(post))
}
