package view

import "fmt"

// PageSize is the fixed number of rows per table page.
const PageSize = 20

// Page is one window into a filtered record list.
type Page[T any] struct {
	Items      []T
	Number     int // 1-based
	TotalPages int
	TotalItems int
}

// Paginate slices records into the requested page. Page numbers are
// clamped into range, so a stale page number after a filter change lands
// on the nearest valid page instead of an empty one. An empty list
// yields page 1 of 1 with no items.
func Paginate[T any](records []T, page int) Page[T] {
	total := len(records)
	pages := (total + PageSize - 1) / PageSize
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      records[start:end],
		Number:     page,
		TotalPages: pages,
		TotalItems: total,
	}
}

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Prev is the previous page number, clamped to 1.
func (p Page[T]) Prev() int {
	if p.Number > 1 {
		return p.Number - 1
	}
	return 1
}

// Next is the next page number, clamped to the last page.
func (p Page[T]) Next() int {
	if p.Number < p.TotalPages {
		return p.Number + 1
	}
	return p.TotalPages
}

// Caption renders the table caption, e.g. "Page 2 of 5 (81 users)".
func (p Page[T]) Caption(noun string) string {
	return fmt.Sprintf("Page %d of %d (%d %s)", p.Number, p.TotalPages, p.TotalItems, noun)
}
