// Package models holds the API-facing record types shared by the
// repositories, services and handlers. Each row type carries db tags for
// sqlx scanning and json tags for the wire shape.
package models

// ApiResponse is the uniform list envelope returned by every collection
// and single-record endpoint. Single records travel as a one-element Data
// slice. Data is always present, never null.
type ApiResponse[T any] struct {
	Total    int      `json:"total"`
	Messages []string `json:"messages,omitempty"`
	Data     []T      `json:"data"`
}

// NewApiResponse wraps a slice of records in the standard envelope.
func NewApiResponse[T any](data []T) ApiResponse[T] {
	if data == nil {
		data = []T{}
	}
	return ApiResponse[T]{
		Total: len(data),
		Data:  data,
	}
}

// NewSingleResponse wraps one record in the standard envelope.
func NewSingleResponse[T any](record T) ApiResponse[T] {
	return ApiResponse[T]{
		Total: 1,
		Data:  []T{record},
	}
}

// NewCountResponse reports the outcome of a delete as a statistic.
func NewCountResponse(name string, count int) ApiResponse[Statistic] {
	return NewSingleResponse(Statistic{StatType: name, StatValue: count})
}

// PaginationRequest carries the standard page parameters.
type PaginationRequest struct {
	PageNum  int `query:"pagenum" validate:"gte=1"`
	PageSize int `query:"pagesize" validate:"gte=1,lte=200"`
}

// FilterRequest carries a title-substring filter, optionally paginated.
type FilterRequest struct {
	TitleFilter string `query:"titlefilter" validate:"required"`
	PageNum     int    `query:"pagenum"`
	PageSize    int    `query:"pagesize"`
}
