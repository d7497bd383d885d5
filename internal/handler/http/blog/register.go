package blog

import (
	"log/slog"
	"net/http"

	"savvy-blog/internal/common/pagination"
	blogUC "savvy-blog/internal/usecase/blog"
)

// Register registers all blog content HTTP handlers with the given mux.
// All routes are read-only; posts are authored in an external CMS.
func Register(mux *http.ServeMux, svc *blogUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /api/blog/posts", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /api/blog/posts/{slug}", GetHandler{Svc: svc})
	mux.Handle("GET /api/blog/posts/{slug}/sidebar", SidebarHandler{Svc: svc})
	mux.Handle("GET /api/blog/categories", CategoriesHandler{Svc: svc})
}
