package query

import (
	"math"

	"moviedb/errs"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Page struct {
	Page  int
	Limit int
}

// Skip is (page-1)*limit, saturating at math.MaxInt64 so a huge page stays
// past the last one instead of wrapping negative.
func (p Page) Skip() int64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	before, limit := int64(p.Page-1), int64(p.Limit)
	if before > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return before * limit
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

type Paged[T any] struct {
	Results     []T   `json:"results"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

// NewPaged wraps one page of results. Asking for a page past the last one is
// an invalid request; page 1 of an empty result set is not.
func NewPaged[T any](items []T, total int64, p Page) (Paged[T], error) {
	pages := TotalPages(total, p.Limit)
	if p.Page > 1 && p.Page > pages {
		return Paged[T]{}, errs.Errorf(errs.EINVALID, "page: page %d exceeds total pages %d\n", p.Page, pages)
	}
	if items == nil {
		items = []T{}
	}
	return Paged[T]{
		Results:     items,
		TotalCount:  total,
		TotalPages:  pages,
		CurrentPage: p.Page,
		Limit:       p.Limit,
	}, nil
}

// Map converts the results of a page while keeping its counters.
func Map[T, U any](p Paged[T], fn func(T) U) Paged[U] {
	out := make([]U, len(p.Results))
	for i, r := range p.Results {
		out[i] = fn(r)
	}
	return Paged[U]{
		Results:     out,
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
		Limit:       p.Limit,
	}
}
