// Package listing runs the per-request listing pipeline: decode the query
// string, filter, partition into featured/regular, and page the result.
package listing

import (
	"log/slog"
	"net/url"

	"github.com/me/showcase/internal/filter"
	"github.com/me/showcase/internal/paginate"
	"github.com/me/showcase/internal/query"
	"github.com/me/showcase/pkg/model"
)

// Lister computes listings. It holds no per-request state and is safe for
// concurrent use.
type Lister struct {
	logger *slog.Logger
}

// New creates a Lister that reports diagnostics to logger.
func New(logger *slog.Logger) *Lister {
	return &Lister{logger: logger.With("component", "listing")}
}

// List decodes rawQuery for coll and computes the listing over items.
func (l *Lister) List(coll model.Collection, items []*model.ContentItem, rawQuery string) *model.Listing {
	f, p := query.ForCollection(coll).Decode(rawQuery)
	return l.Compute(coll, items, f, p)
}

// ListValues is List for already-parsed query values.
func (l *Lister) ListValues(coll model.Collection, items []*model.ContentItem, v url.Values) *model.Listing {
	f, p := query.ForCollection(coll).DecodeValues(v)
	return l.Compute(coll, items, f, p)
}

// Compute runs filter, partition and pagination for decoded state.
//
// The window pages the whole filtered set in its original order, so
// featured items keep their place in the grid. Featured is a separate
// spotlight view over the same items and is never paged.
func (l *Lister) Compute(coll model.Collection, items []*model.ContentItem, f model.FilterState, p model.PaginationState) *model.Listing {
	filtered := filter.Apply(items, f)
	featured, regular := filter.Partition(filtered, f.FeaturedOnly, coll.FeaturedField)

	if !coll.FeaturedField && !f.FeaturedOnly && len(filtered) > 0 {
		l.logger.Warn("featured field unavailable, listing all items as regular",
			"collection", coll.Name,
			"items", len(filtered),
		)
	}

	window := paginate.Slice(filtered, p)
	links := paginate.PageNumbers(p.CurrentPage, window.TotalPages)

	if window.TotalPages > 0 && p.CurrentPage > window.TotalPages {
		// Not clamped: the page stays empty and links still point back.
		l.logger.Info("page past last page",
			"collection", coll.Name,
			"page", p.CurrentPage,
			"total_pages", window.TotalPages,
		)
	}

	out := &model.Listing{
		Collection:        coll.Name,
		Filter:            f,
		Pagination:        p,
		Featured:          featured,
		Regular:           regular,
		Window:            window,
		Links:             links,
		FeaturedAvailable: coll.FeaturedField,
	}
	l.logger.Debug("listing computed",
		"collection", coll.Name,
		"search", f.SearchQuery,
		"categories", len(f.SelectedCategoryIDs),
		"featured_only", f.FeaturedOnly,
		"total", len(items),
		"matched", len(filtered),
		"featured", len(featured),
		"page", p.CurrentPage,
		"total_pages", window.TotalPages,
	)
	return out
}
