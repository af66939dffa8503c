package helpers

import (
	"net/http"
	"strconv"

	"jamqueuepro/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the query string. Missing,
// malformed, or out-of-range values silently fall back to defaults rather
// than failing the request.
func ParsePagination(r *http.Request) domain.PaginationParams {
	p := domain.PaginationParams{
		Page:     queryInt(r, "page", DefaultPage),
		PageSize: queryInt(r, "page_size", DefaultPageSize),
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// PaginationMeta accompanies paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta computes TotalPages as ceil(total/pageSize).
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	m := PaginationMeta{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		m.TotalPages = (total + pageSize - 1) / pageSize
	}
	return m
}
