package model

import (
	"encoding/json"
	"fmt"
)

// FilterState is the search/category/featured selection decoded from a
// request. SelectedCategoryIDs is an ordered set: no duplicates, first-seen
// order.
type FilterState struct {
	SearchQuery         string   `json:"search_query"`
	SelectedCategoryIDs []string `json:"selected_category_ids"`
	FeaturedOnly        bool     `json:"featured_only"`
}

// Active reports whether any filter narrows the result set.
func (f FilterState) Active() bool {
	return f.SearchQuery != "" || len(f.SelectedCategoryIDs) > 0 || f.FeaturedOnly
}

// IsSelected reports whether category id is part of the selection.
func (f FilterState) IsSelected(id string) bool {
	for _, s := range f.SelectedCategoryIDs {
		if s == id {
			return true
		}
	}
	return false
}

// PaginationState is the requested page. CurrentPage is at least 1 and
// ItemsPerPage is positive once decoded.
type PaginationState struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
}

// PageWindow is the slice of items visible on the current page.
type PageWindow struct {
	Items      []*ContentItem `json:"items"`
	StartIndex int            `json:"start_index"`
	EndIndex   int            `json:"end_index"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

// Ellipsis is the display marker for collapsed page ranges.
const Ellipsis = "..."

// PageLink is either a concrete page number or an ellipsis marker.
type PageLink struct {
	Number   int
	Ellipsis bool
}

// Page returns a link to page n.
func Page(n int) PageLink { return PageLink{Number: n} }

// Gap returns an ellipsis marker.
func Gap() PageLink { return PageLink{Ellipsis: true} }

func (p PageLink) String() string {
	if p.Ellipsis {
		return Ellipsis
	}
	return fmt.Sprintf("%d", p.Number)
}

// MarshalJSON encodes a page number as a JSON number and a gap as "...".
func (p PageLink) MarshalJSON() ([]byte, error) {
	if p.Ellipsis {
		return json.Marshal(Ellipsis)
	}
	return json.Marshal(p.Number)
}

// UnmarshalJSON accepts either form produced by MarshalJSON.
func (p *PageLink) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != Ellipsis {
			return fmt.Errorf("invalid page marker %q", s)
		}
		*p = Gap()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("page link: %w", err)
	}
	*p = Page(n)
	return nil
}

// PageLinkModel is the pagination control model for rendering.
type PageLinkModel struct {
	PageNumbers []PageLink `json:"page_numbers"`
	CurrentPage int        `json:"current_page"`
	HasPrevious bool       `json:"has_previous"`
	HasNext     bool       `json:"has_next"`
}

// Listing is the full result of one listing request.
type Listing struct {
	Collection string          `json:"collection"`
	Filter     FilterState     `json:"filter"`
	Pagination PaginationState `json:"pagination"`
	// Featured is the spotlight row. It is not paged.
	Featured []*ContentItem `json:"featured"`
	// Regular is every non-featured item that passed the filters.
	Regular []*ContentItem `json:"-"`
	Window  PageWindow     `json:"window"`
	Links   PageLinkModel  `json:"links"`
	// FeaturedAvailable is false when the collection cannot tell featured
	// items apart.
	FeaturedAvailable bool `json:"featured_available"`
}
