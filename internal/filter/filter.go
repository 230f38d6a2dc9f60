// Package filter narrows a collection's items to those matching a request's
// search and category selection, and splits the result into featured and
// regular groups.
package filter

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/me/showcase/pkg/model"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every <...> span from s. It is not an HTML sanitizer;
// it only prepares markup for text matching.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// fold is the case-insensitive comparison key for search.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Apply returns the items matching f, in their original order. The
// returned slice holds the same pointers as items and items is not
// modified.
func Apply(items []*model.ContentItem, f model.FilterState) []*model.ContentItem {
	needle := ""
	if f.SearchQuery != "" {
		needle = fold(f.SearchQuery)
	}
	selected := make(map[string]bool, len(f.SelectedCategoryIDs))
	for _, id := range f.SelectedCategoryIDs {
		selected[id] = true
	}

	out := make([]*model.ContentItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if !matchesSearch(item, needle) || !matchesCategories(item, selected) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// matchesSearch checks the title and the tag-stripped excerpt. An empty
// needle matches everything.
func matchesSearch(item *model.ContentItem, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(fold(item.Title), needle) {
		return true
	}
	return strings.Contains(fold(StripTags(item.ExcerptHTML)), needle)
}

// matchesCategories is an OR over the selection; no selection passes.
func matchesCategories(item *model.ContentItem, selected map[string]bool) bool {
	if len(selected) == 0 {
		return true
	}
	for _, id := range item.CategoryIDs {
		if selected[id] {
			return true
		}
	}
	return false
}
