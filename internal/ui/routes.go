package ui

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the index plus a list and a detail route for
// every configured collection.
func (ui *UI) RegisterRoutes(r chi.Router) {
	r.Get("/", ui.HandleIndex)

	for _, coll := range ui.site.Collections {
		r.Route(coll.Path, func(r chi.Router) {
			r.Get("/", ui.HandleList(coll))
			r.Get("/{slug}", ui.HandleDetail(coll))
		})
	}
}
