// Package query translates between listing URLs and filter/pagination
// state. The key names and the canonical omission of page=1 are part of the
// public URL contract and must not change.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/me/showcase/pkg/model"
)

// Reserved query keys. A taxonomy may not use any of these names.
const (
	KeySearch   = "search"
	KeyPage     = "page"
	KeyFeatured = "featured"
)

// DefaultItemsPerPage is used when a codec is built without a page size.
const DefaultItemsPerPage = 9

// IsReserved reports whether key is one of the fixed listing parameters.
func IsReserved(key string) bool {
	switch key {
	case KeySearch, KeyPage, KeyFeatured:
		return true
	}
	return false
}

// Codec decodes and encodes the query string of one collection.
type Codec struct {
	Taxonomy     string // repeated category key, e.g. "service_type"
	ItemsPerPage int
}

// ForCollection returns the codec for a collection's listing URLs.
func ForCollection(c model.Collection) Codec {
	return Codec{Taxonomy: c.Taxonomy, ItemsPerPage: c.ItemsPerPage}
}

func (c Codec) perPage() int {
	if c.ItemsPerPage <= 0 {
		return DefaultItemsPerPage
	}
	return c.ItemsPerPage
}

// Decode parses a raw query string (with or without a leading '?').
// Malformed input never fails; whatever can be read is used and the rest
// falls back to defaults.
func (c Codec) Decode(raw string) (model.FilterState, model.PaginationState) {
	raw = strings.TrimPrefix(raw, "?")
	// ParseQuery returns the pairs it could parse alongside the first error.
	values, _ := url.ParseQuery(raw)
	return c.DecodeValues(values)
}

// DecodeValues is Decode for already-parsed values.
func (c Codec) DecodeValues(v url.Values) (model.FilterState, model.PaginationState) {
	var f model.FilterState
	f.SearchQuery = v.Get(KeySearch)
	f.FeaturedOnly = v.Get(KeyFeatured) == "true"

	if c.Taxonomy != "" && !IsReserved(c.Taxonomy) {
		seen := make(map[string]bool)
		for _, id := range v[c.Taxonomy] {
			id = strings.TrimSpace(id)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			f.SelectedCategoryIDs = append(f.SelectedCategoryIDs, id)
		}
	}

	p := model.PaginationState{
		CurrentPage:  parsePage(v.Get(KeyPage)),
		ItemsPerPage: c.perPage(),
	}
	return f, p
}

// parsePage fails closed to 1.
func parsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Encode serializes state back to a query string without a leading '?'.
// A positive overridePage replaces the current page, which is how "go to
// page N" links keep the active filters. Keys are written in a fixed order
// (search, categories, featured, page) and page is omitted when it is 1.
func (c Codec) Encode(f model.FilterState, p model.PaginationState, overridePage int) string {
	page := p.CurrentPage
	if overridePage > 0 {
		page = overridePage
	}

	var parts []string
	if f.SearchQuery != "" {
		parts = append(parts, KeySearch+"="+url.QueryEscape(f.SearchQuery))
	}
	if c.Taxonomy != "" && !IsReserved(c.Taxonomy) {
		key := url.QueryEscape(c.Taxonomy)
		for _, id := range f.SelectedCategoryIDs {
			if id == "" {
				continue
			}
			parts = append(parts, key+"="+url.QueryEscape(id))
		}
	}
	if f.FeaturedOnly {
		parts = append(parts, KeyFeatured+"=true")
	}
	if page > 1 {
		parts = append(parts, KeyPage+"="+strconv.Itoa(page))
	}
	return strings.Join(parts, "&")
}

// Href joins path with the encoded query. The canonical URL of an
// unfiltered first page is the bare path.
func (c Codec) Href(path string, f model.FilterState, p model.PaginationState, overridePage int) string {
	q := c.Encode(f, p, overridePage)
	if q == "" {
		return path
	}
	return path + "?" + q
}
