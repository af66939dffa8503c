package domain

// PaginationParams carries validated page/page_size values for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the SQL offset for the current page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
