package blog

import (
	"net/http"

	"savvy-blog/internal/handler/http/respond"
	blogUC "savvy-blog/internal/usecase/blog"
)

// CategoriesHandler serves the category index used by the listing filter UI.
type CategoriesHandler struct {
	Svc *blogUC.Service
}

func (h CategoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Svc.ListCategories(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryDTO{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}

	respond.JSON(w, http.StatusOK, dtos)
}
