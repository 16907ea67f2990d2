package repository

import "time"

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListOptions carries the optional filter/sort/pagination parameters
// shared by the author and project list queries.
type ListOptions struct {
	Query       string
	Page        int
	PageSize    int
	Sort        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// AuthorID restricts projects to one author; ignored for authors
	AuthorID *int64
}

// Normalized returns a copy with page and pageSize clamped into range
// and the sort specifier defaulted.
func (o ListOptions) Normalized() ListOptions {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.PageSize < 1 {
		o.PageSize = DefaultPageSize
	}
	if o.PageSize > MaxPageSize {
		o.PageSize = MaxPageSize
	}
	return o
}

// PageInfo is the pagination metadata returned alongside list items.
type PageInfo struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Total    int64  `json:"total"`
	Pages    int    `json:"pages"`
	HasPrev  bool   `json:"hasPrev"`
	HasNext  bool   `json:"hasNext"`
	Sort     string `json:"sort"`
}

// ComputePageInfo derives pagination metadata from a total row count.
// Pages is never below 1, so page=1 with total=0 yields no prev/next.
func ComputePageInfo(total int64, page, pageSize int, sort string) PageInfo {
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}
	return PageInfo{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Pages:    pages,
		HasPrev:  page > 1,
		HasNext:  page < pages,
		Sort:     sort,
	}
}
