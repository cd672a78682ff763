package domain

// PaginationParams carries a validated page and page size for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the SQL offset for the page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
