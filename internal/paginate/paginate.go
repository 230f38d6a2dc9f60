// Package paginate computes page windows and the page-number bar shown under
// listings.
package paginate

import (
	"math"

	"github.com/me/showcase/pkg/model"
)

// MaxPlainPages is the largest page count rendered without ellipses.
const MaxPlainPages = 5

// TotalPages returns ceil(totalItems/perPage), or 0 when there is nothing
// to page.
func TotalPages(totalItems, perPage int) int {
	if totalItems <= 0 || perPage <= 0 {
		return 0
	}
	return (totalItems-1)/perPage + 1
}

// Slice returns the window of items for p. A page past the end yields an
// empty window, not an error. CurrentPage is not clamped to the last page.
// A page whose offset does not fit in an int gets StartIndex and EndIndex
// of TotalItems.
func Slice(items []*model.ContentItem, p model.PaginationState) model.PageWindow {
	total := len(items)
	w := model.PageWindow{
		Items:      []*model.ContentItem{},
		TotalItems: total,
		TotalPages: TotalPages(total, p.ItemsPerPage),
	}
	if p.ItemsPerPage <= 0 {
		return w
	}

	page := p.CurrentPage
	if page < 1 {
		page = 1
	}
	if page-1 > (math.MaxInt-p.ItemsPerPage)/p.ItemsPerPage {
		w.StartIndex, w.EndIndex = total, total
		return w
	}
	w.StartIndex = (page - 1) * p.ItemsPerPage
	w.EndIndex = min(w.StartIndex+p.ItemsPerPage, total)
	if w.StartIndex < total {
		w.Items = items[w.StartIndex:w.EndIndex]
	}
	return w
}

// PageNumbers builds the page bar for current out of totalPages.
//
// Up to MaxPlainPages pages are listed in full. Beyond that the bar always
// shows the first and last page, a three-page range around current
// (two pages when current sits at either edge), and an ellipsis for each
// collapsed gap, so at most five concrete numbers appear.
func PageNumbers(current, totalPages int) model.PageLinkModel {
	m := model.PageLinkModel{
		PageNumbers: []model.PageLink{},
		CurrentPage: current,
		HasPrevious: current > 1,
		HasNext:     current < totalPages,
	}
	if totalPages <= 0 {
		return m
	}

	if totalPages <= MaxPlainPages {
		for n := 1; n <= totalPages; n++ {
			m.PageNumbers = append(m.PageNumbers, model.Page(n))
		}
		return m
	}

	m.PageNumbers = append(m.PageNumbers, model.Page(1))
	if current > 3 {
		m.PageNumbers = append(m.PageNumbers, model.Gap())
	}

	start := max(2, current-1)
	end := min(totalPages-1, current+1)
	if current <= 2 {
		start, end = 2, 3
	}
	if current >= totalPages-1 {
		start, end = totalPages-2, totalPages-1
	}
	for n := start; n <= end; n++ {
		m.PageNumbers = append(m.PageNumbers, model.Page(n))
	}

	if current < totalPages-2 {
		m.PageNumbers = append(m.PageNumbers, model.Gap())
	}
	m.PageNumbers = append(m.PageNumbers, model.Page(totalPages))
	return m
}
