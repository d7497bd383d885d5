package pagination

// Metadata contains pagination metadata included in listing responses.
type Metadata struct {
	Page     int  `json:"page"`      // current zero-based page number
	PageSize int  `json:"page_size"` // items per page
	HasMore  bool `json:"has_more"`  // whether a further page likely exists
}

// Response is a generic paginated response wrapper.
// T is the type of data items (e.g., PostDTO).
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse creates a paginated response for one page of items.
func NewResponse[T any](data []T, params Params, pageSize int) Response[T] {
	return Response[T]{
		Data: data,
		Pagination: Metadata{
			Page:     params.Page,
			PageSize: pageSize,
			HasMore:  HasMore(len(data), pageSize),
		},
	}
}
