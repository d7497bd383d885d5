package blog

import (
	"errors"
	"net/http"

	"savvy-blog/internal/handler/http/respond"
	"savvy-blog/internal/observability/metrics"
	blogUC "savvy-blog/internal/usecase/blog"
)

// SidebarHandler serves the recent and related rails shown alongside a
// post. The rails are best effort: a rail whose store read failed comes
// back empty, so the only error surfaced here is an invalid slug.
type SidebarHandler struct {
	Svc *blogUC.Service
}

func (h SidebarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	result, err := h.Svc.Sidebar(r.Context(), slug)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, blogUC.ErrInvalidSlug) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	out := SidebarDTO{
		Recent:  toRailDTOs(result.Recent),
		Related: toRailDTOs(result.Related),
	}

	metrics.RecordPostServed("sidebar")
	respond.JSON(w, http.StatusOK, out)
}
