package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// PaginationWindow is how many numbered pages surround the current one.
const PaginationWindow = 5

// PageItem is a numbered link or an ellipsis gap.
type PageItem struct {
	Page     int
	Current  bool
	Ellipsis bool
}

// Pagination describes the pager for one list view.
type Pagination struct {
	Current int
	Total   int
	Items   []PageItem
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Current > 1 }

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool { return p.Current < p.Total }

// BuildPagination lays out a window of pages around current with the first
// and last pages always reachable.
func BuildPagination(current, total int) Pagination {
	if total <= 0 {
		return Pagination{Current: 1}
	}
	current = max(1, min(current, total))

	start := max(1, current-PaginationWindow/2)
	end := min(total, start+PaginationWindow-1)
	start = max(1, end-PaginationWindow+1)

	var items []PageItem
	if start > 1 {
		items = append(items, PageItem{Page: 1})
		if start > 2 {
			items = append(items, PageItem{Ellipsis: true})
		}
	}
	for page := start; page <= end; page++ {
		items = append(items, PageItem{Page: page, Current: page == current})
	}
	if end < total {
		if end < total-1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: total})
	}
	return Pagination{Current: current, Total: total, Items: items}
}

// Pager renders p with links from pageURL. Nothing renders for a single page.
func Pager(p Pagination, pageURL func(page int) string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if p.Total <= 1 {
			return nil
		}
		h := newHTMLWriter(ctx, w)
		h.raw(`<nav class="pagination" aria-label="Pagination">`)
		if p.HasPrev() {
			h.raw(`<a class="page-link page-prev"`)
			h.href(pageURL(p.Current - 1))
			h.raw(`>Previous</a>`)
		} else {
			h.raw(`<span class="page-link page-prev disabled">Previous</span>`)
		}
		for _, item := range p.Items {
			switch {
			case item.Ellipsis:
				h.raw(`<span class="page-gap">&hellip;</span>`)
			case item.Current:
				h.raw(`<span class="page-link current" aria-current="page">`, strconv.Itoa(item.Page), `</span>`)
			default:
				h.raw(`<a class="page-link"`)
				h.href(pageURL(item.Page))
				h.raw(`>`, strconv.Itoa(item.Page), `</a>`)
			}
		}
		if p.HasNext() {
			h.raw(`<a class="page-link page-next"`)
			h.href(pageURL(p.Current + 1))
			h.raw(`>Next</a>`)
		} else {
			h.raw(`<span class="page-link page-next disabled">Next</span>`)
		}
		h.raw(`</nav>`)
		return h.err
	})
}
