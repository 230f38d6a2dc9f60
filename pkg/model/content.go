package model

import "time"

// ContentItem is one CMS record (a service, case study, or team member)
// shown on a listing page.
type ContentItem struct {
	ID          string    `json:"id"`
	Collection  string    `json:"collection"`
	Title       string    `json:"title"`
	ExcerptHTML string    `json:"excerpt_html"`
	Slug        string    `json:"slug"`
	CategoryIDs []string  `json:"category_ids"`
	Featured    bool      `json:"featured"`
	Date        time.Time `json:"date"`
}

// HasCategory reports whether the item is tagged with id.
func (c *ContentItem) HasCategory(id string) bool {
	for _, cid := range c.CategoryIDs {
		if cid == id {
			return true
		}
	}
	return false
}

// Category is a term in a taxonomy such as service_type or department.
// Its ID is the value carried in query strings.
type Category struct {
	ID          string `json:"id"`
	Taxonomy    string `json:"taxonomy"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Collection describes one listing: which items it shows, where it is
// mounted, and which taxonomy filters it.
type Collection struct {
	Name         string `json:"name" yaml:"name"`
	Title        string `json:"title" yaml:"title"`
	Path         string `json:"path" yaml:"path"`
	Taxonomy     string `json:"taxonomy" yaml:"taxonomy"`
	ItemsPerPage int    `json:"items_per_page" yaml:"items_per_page"`
	// FeaturedField is false when the backend does not expose the
	// featured flag for this collection.
	FeaturedField bool `json:"featured_field" yaml:"featured_field"`
}
