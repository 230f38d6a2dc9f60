package ui

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/go-chi/chi/v5"

	"github.com/me/showcase/internal/config"
	"github.com/me/showcase/internal/filter"
	"github.com/me/showcase/internal/listing"
	"github.com/me/showcase/internal/query"
	"github.com/me/showcase/internal/store"
	"github.com/me/showcase/pkg/model"
)

// UI renders the public listing pages.
type UI struct {
	store  store.Store
	site   *config.Site
	lister *listing.Lister
	logger *slog.Logger
}

// New creates a new UI handler.
func New(st store.Store, site *config.Site, lister *listing.Lister, logger *slog.Logger) *UI {
	return &UI{
		store:  st,
		site:   site,
		lister: lister,
		logger: logger.With("component", "ui"),
	}
}

// pageLink is one rendered control of the page bar.
type pageLink struct {
	Label    string
	Href     string
	Current  bool
	Ellipsis bool
}

// categoryOption is one checkbox of the filter form.
type categoryOption struct {
	ID      string
	Name    string
	Checked bool
}

// HandleIndex lists the configured collections.
func (ui *UI) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ui.render(w, http.StatusOK, "index", map[string]any{
		"Title":       ui.site.Name,
		"Description": fmt.Sprintf("%s: %s", ui.site.Name, collectionTitles(ui.site.Collections)),
		"Canonical":   ui.absolute("/"),
		"Site":        ui.site,
		"Collections": ui.site.Collections,
	})
}

// HandleList renders the filtered, paged listing of one collection.
func (ui *UI) HandleList(coll model.Collection) http.HandlerFunc {
	codec := query.ForCollection(coll)
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := ui.store.ListItems(r.Context(), coll.Name)
		if err != nil {
			ui.renderError(w, "Failed to load items", err)
			return
		}
		cats, err := ui.store.ListCategories(r.Context(), coll.Taxonomy)
		if err != nil {
			ui.renderError(w, "Failed to load categories", err)
			return
		}

		l := ui.lister.ListValues(coll, items, r.URL.Query())
		f, p := l.Filter, l.Pagination

		options := make([]categoryOption, 0, len(cats))
		names := make(map[string]string, len(cats))
		for _, c := range cats {
			names[c.ID] = c.Name
			options = append(options, categoryOption{ID: c.ID, Name: c.Name, Checked: f.IsSelected(c.ID)})
		}

		links := make([]pageLink, 0, len(l.Links.PageNumbers))
		for _, pl := range l.Links.PageNumbers {
			if pl.Ellipsis {
				links = append(links, pageLink{Label: model.Ellipsis, Ellipsis: true})
				continue
			}
			links = append(links, pageLink{
				Label:   humanize.Comma(int64(pl.Number)),
				Href:    codec.Href(coll.Path, f, p, pl.Number),
				Current: pl.Number == l.Links.CurrentPage,
			})
		}

		data := map[string]any{
			"Title":         listTitle(coll, l),
			"Description":   listDescription(ui.site, coll, l),
			"Canonical":     ui.absolute(codec.Href(coll.Path, f, p, 0)),
			"Site":          ui.site,
			"Collections":   ui.site.Collections,
			"Collection":    coll,
			"Listing":       l,
			"Filter":        f,
			"Categories":    options,
			"CategoryNames": names,
			"PageLinks":     links,
			"Range":         windowRange(l.Window),
			"ClearHref":     coll.Path,
		}
		if l.Links.HasPrevious {
			data["PrevHref"] = codec.Href(coll.Path, f, p, l.Links.CurrentPage-1)
		}
		if l.Links.HasNext {
			data["NextHref"] = codec.Href(coll.Path, f, p, l.Links.CurrentPage+1)
		}
		ui.render(w, http.StatusOK, "list", data)
	}
}

// HandleDetail renders a single item of the collection.
func (ui *UI) HandleDetail(coll model.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		item, err := ui.store.GetItem(r.Context(), coll.Name, slug)
		if err != nil {
			ui.renderError(w, "Failed to load item", err)
			return
		}
		if item == nil {
			ui.renderNotFound(w, fmt.Sprintf("No %s entry named %q.", strings.ToLower(coll.Title), slug))
			return
		}

		cats, err := ui.store.ListCategories(r.Context(), coll.Taxonomy)
		if err != nil {
			ui.renderError(w, "Failed to load categories", err)
			return
		}
		names := make(map[string]string, len(cats))
		for _, c := range cats {
			names[c.ID] = c.Name
		}

		desc := truncate(html.UnescapeString(filter.StripTags(excerptPolicy.Sanitize(item.ExcerptHTML))), 155)
		if desc == "" {
			desc = fmt.Sprintf("%s: %s", coll.Title, item.Title)
		}

		ui.render(w, http.StatusOK, "detail", map[string]any{
			"Title":         fmt.Sprintf("%s - %s", item.Title, ui.site.Name),
			"Description":   desc,
			"Canonical":     ui.absolute(coll.Path + "/" + item.Slug),
			"Site":          ui.site,
			"Collections":   ui.site.Collections,
			"Collection":    coll,
			"Item":          item,
			"CategoryNames": names,
		})
	}
}

func listTitle(coll model.Collection, l *model.Listing) string {
	if l.Links.CurrentPage > 1 {
		return fmt.Sprintf("%s - Page %d", coll.Title, l.Links.CurrentPage)
	}
	return coll.Title
}

func listDescription(site *config.Site, coll model.Collection, l *model.Listing) string {
	return fmt.Sprintf("%s from %s: %s.", coll.Title, site.Name,
		english.Plural(l.Window.TotalItems, "entry", "entries"))
}

// windowRange describes the visible slice as "1-9 of 23". Empty when the
// page lies past the end.
func windowRange(win model.PageWindow) string {
	if len(win.Items) == 0 {
		return ""
	}
	return fmt.Sprintf("%s-%s of %s",
		humanize.Comma(int64(win.StartIndex+1)),
		humanize.Comma(int64(win.StartIndex+len(win.Items))),
		humanize.Comma(int64(win.TotalItems)))
}

func collectionTitles(colls []model.Collection) string {
	titles := make([]string, 0, len(colls))
	for _, c := range colls {
		titles = append(titles, c.Title)
	}
	return strings.Join(titles, ", ")
}

// absolute prefixes path with the site's base URL when one is configured.
func (ui *UI) absolute(path string) string {
	return strings.TrimSuffix(ui.site.BaseURL, "/") + path
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

func (ui *UI) render(w http.ResponseWriter, status int, template string, data map[string]any) {
	var buf bytes.Buffer
	if err := renderTemplate(&buf, template, data); err != nil {
		ui.logger.Error("template render failed", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (ui *UI) renderError(w http.ResponseWriter, message string, err error) {
	ui.logger.Error(message, "error", err)
	ui.render(w, http.StatusInternalServerError, "error", map[string]any{
		"Title":       "Error - " + ui.site.Name,
		"Heading":     "Something went wrong",
		"Message":     message,
		"Site":        ui.site,
		"Collections": ui.site.Collections,
	})
}

func (ui *UI) renderNotFound(w http.ResponseWriter, message string) {
	ui.render(w, http.StatusNotFound, "error", map[string]any{
		"Title":       "Not Found - " + ui.site.Name,
		"Heading":     "Page not found",
		"Message":     message,
		"Site":        ui.site,
		"Collections": ui.site.Collections,
	})
}
