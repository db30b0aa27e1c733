// Package pagination computes page metadata for admin list endpoints.
package pagination

import (
	"math"
	"strconv"
)

type Page struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
	Offset  int   `json:"-"`
}

// New clamps page and limit and derives the metadata for a known total.
func New(page, limit int, total int64) *Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages < 1 {
		pages = 1
	}

	return &Page{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
		Offset:  (page - 1) * limit,
	}
}

// FromQuery parses the page and limit request parameters, tolerating junk.
func FromQuery(pageStr, limitStr string) (page, limit int) {
	page, _ = strconv.Atoi(pageStr)
	limit, _ = strconv.Atoi(limitStr)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
