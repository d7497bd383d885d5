package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents listing query parameters from an HTTP request.
type Params struct {
	Page     int    // zero-based page number
	Category string // optional category slug filter, empty means all posts
}

// ParseQueryParams parses listing parameters from the request query string.
//
// Query parameters:
//   - page: zero-based page number (0 is the first page)
//   - category: category slug to filter by
//
// A missing page defaults to 0. Returns an error when page is present but
// not a non-negative integer within config.MaxPage.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{Page: config.DefaultPage}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			return params, fmt.Errorf("invalid query parameter: page must be a non-negative integer")
		}
		if page > config.MaxPage {
			return params, fmt.Errorf("invalid query parameter: page must not exceed %d", config.MaxPage)
		}
		params.Page = page
	}

	params.Category = r.URL.Query().Get("category")
	return params, nil
}
