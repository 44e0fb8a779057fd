// Package pagination provides generic page request/response types and a
// GORM scope for offset pagination.
package pagination

import (
	"math"

	"gorm.io/gorm"
)

// Request holds pagination parameters parsed from query strings.
type Request struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in default values when page or page_size are not provided.
func (r *Request) Defaults() {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.PageSize == 0 {
		r.PageSize = 25
	}
}

// Offset returns the SQL OFFSET for the current page.
func (r *Request) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Response wraps a paginated list of items with metadata.
type Response[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewResponse creates a Response from the given data and total count.
func NewResponse[T any](data []T, page, pageSize int, totalItems int64) Response[T] {
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Scope returns a GORM scope that applies OFFSET and LIMIT for the request.
func Scope(req Request) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
