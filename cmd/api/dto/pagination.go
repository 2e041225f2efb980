package dto

import "content-rebirth/models"

// Pagination is a generic pagination envelope for list results.
// Total counts every item matching the filters; Page is 1-based.
type Pagination[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// PaginationContentDTO is the concrete page type referenced by swagger.
type PaginationContentDTO = Pagination[models.Content]
