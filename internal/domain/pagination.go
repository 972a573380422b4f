package domain

// Page size bounds applied to every paged listing (users, tuition payments).
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams selects one page of a listing. Page is 1-based.
type PaginationParams struct {
	Page     int
	PageSize int
}

// NewPaginationParams clamps page and size into range. Non-positive values
// fall back to the first page and the default size.
func NewPaginationParams(page, size int) PaginationParams {
	if page < 1 {
		page = 1
	}
	switch {
	case size < 1:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return PaginationParams{Page: page, PageSize: size}
}

// Offset is the number of rows skipped before this page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// HasNext reports whether rows remain after this page given the total count.
func (p PaginationParams) HasNext(total int) bool {
	return p.Offset()+p.PageSize < total
}
