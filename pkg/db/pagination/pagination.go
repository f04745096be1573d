// Package pagination implements offset pagination for list endpoints.
package pagination

import "math"

const (
	DefaultLimit = 5
	MaxLimit     = 100
)

type Pagination struct {
	Page  int
	Limit int
}

// Normalize clamps the pagination parameters to their valid ranges.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

type PageInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// BuildPageInfo derives page metadata from a total row count. A page
// past the end of the result set still reports the true total.
func BuildPageInfo(total int64, p Pagination) PageInfo {
	n := p.Normalize()
	return PageInfo{
		Total:      total,
		Page:       n.Page,
		Limit:      n.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(n.Limit))),
	}
}
