package query

import (
	"strconv"

	domainerrors "schoolapp/internal/domain/errors"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// PageRequest identifies a 1-based page of a result set ordered by primary key.
type PageRequest struct {
	Number int
	Size   int
}

// NewPageRequest validates the page coordinates, failing fast on a page number
// below 1 or a page size outside 1..MaxPageSize.
func NewPageRequest(number, size int) (PageRequest, error) {
	var fields []domainerrors.FieldError
	if number < 1 {
		fields = append(fields, domainerrors.FieldError{Field: "pageNumber", Message: "must be greater than or equal to 1"})
	}
	if size < 1 || size > MaxPageSize {
		fields = append(fields, domainerrors.FieldError{Field: "pageSize", Message: "must be between 1 and " + strconv.Itoa(MaxPageSize)})
	}
	if len(fields) > 0 {
		return PageRequest{}, domainerrors.ErrInvalidPagination.WithFields(fields...)
	}

	return PageRequest{Number: number, Size: size}, nil
}

// Offset is the number of ordered records preceding the page.
func (p PageRequest) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit is the maximum number of records on the page.
func (p PageRequest) Limit() int {
	return p.Size
}

// PaginatedResult is a page of records plus the total count of all matching
// records and the coordinates used to produce it.
type PaginatedResult[T any] struct {
	Data         []T   `json:"data"`
	TotalRecords int64 `json:"totalRecords"`
	TotalPages   int   `json:"totalPages"`
	PageNumber   int   `json:"pageNumber"`
	PageSize     int   `json:"pageSize"`
}

// NewPaginatedResult assembles a result from an already sliced page. Data is
// never nil and never longer than the page size.
func NewPaginatedResult[T any](data []T, total int64, page PageRequest) PaginatedResult[T] {
	if data == nil {
		data = []T{}
	}
	if page.Size >= 0 && len(data) > page.Size {
		data = data[:page.Size]
	}

	return PaginatedResult[T]{
		Data:         data,
		TotalRecords: total,
		TotalPages:   pageCount(total, page.Size),
		PageNumber:   page.Number,
		PageSize:     page.Size,
	}
}

// MapResult converts the page contents while keeping the coordinates.
func MapResult[T, U any](in PaginatedResult[T], fn func(T) U) PaginatedResult[U] {
	out := make([]U, 0, len(in.Data))
	for _, item := range in.Data {
		out = append(out, fn(item))
	}

	return PaginatedResult[U]{
		Data:         out,
		TotalRecords: in.TotalRecords,
		TotalPages:   in.TotalPages,
		PageNumber:   in.PageNumber,
		PageSize:     in.PageSize,
	}
}

// pageCount is the number of pages of size needed to hold total records.
func pageCount(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}

	return int((total + int64(size) - 1) / int64(size))
}
