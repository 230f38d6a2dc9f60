package listing

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/me/showcase/pkg/model"
)

// records decodes the JSON log lines written to buf.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		out = append(out, rec)
	}
	return out
}

func testLister(level slog.Level) (*Lister, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level}))
	return New(logger), &buf
}

func sampleItems() []*model.ContentItem {
	return []*model.ContentItem{
		{ID: "A", Title: "Shopify Store", Featured: true, CategoryIDs: []string{"t1"}},
		{ID: "B", Title: "Marketing", CategoryIDs: []string{"t2"}},
		{ID: "C", Title: "E-shop Build", Featured: true, CategoryIDs: []string{"t1", "t3"}},
		{ID: "D", Title: "Brand Refresh", CategoryIDs: []string{"t3"}},
		{ID: "E", Title: "SEO Audit", CategoryIDs: []string{"t2"}},
	}
}

func services(featured bool) model.Collection {
	return model.Collection{
		Name:          "services",
		Path:          "/services",
		Taxonomy:      "service_type",
		ItemsPerPage:  2,
		FeaturedField: featured,
	}
}

func itemIDs(items []*model.ContentItem) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(it.ID)
	}
	return b.String()
}

func TestList_WithoutFeaturedCapability(t *testing.T) {
	l, _ := testLister(slog.LevelError)
	got := l.List(services(false), sampleItems(), "page=2")

	if got.FeaturedAvailable {
		t.Error("FeaturedAvailable = true")
	}
	if len(got.Featured) != 0 {
		t.Errorf("featured = %q, want none", itemIDs(got.Featured))
	}
	if ids := itemIDs(got.Window.Items); ids != "CD" {
		t.Errorf("window = %q, want CD", ids)
	}
	if got.Window.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", got.Window.TotalPages)
	}
	if !got.Links.HasPrevious || !got.Links.HasNext {
		t.Errorf("links = %+v", got.Links)
	}
}

func TestList_FeaturedSpotlight(t *testing.T) {
	l, _ := testLister(slog.LevelError)
	got := l.List(services(true), sampleItems(), "page=2")

	if ids := itemIDs(got.Featured); ids != "AC" {
		t.Errorf("featured = %q, want AC", ids)
	}
	if ids := itemIDs(got.Regular); ids != "BDE" {
		t.Errorf("regular = %q, want BDE", ids)
	}
	// Featured items keep their place in the paged window.
	if ids := itemIDs(got.Window.Items); ids != "CD" {
		t.Errorf("window = %q, want CD", ids)
	}
	if got.Window.TotalPages != 3 || got.Window.TotalItems != 5 {
		t.Errorf("window totals = %d items / %d pages, want 5 / 3", got.Window.TotalItems, got.Window.TotalPages)
	}
}

func TestList_FeaturedOnlyPagesFeatured(t *testing.T) {
	l, _ := testLister(slog.LevelError)
	got := l.List(services(true), sampleItems(), "featured=true&search=shop")

	if ids := itemIDs(got.Featured); ids != "AC" {
		t.Errorf("featured = %q, want AC", ids)
	}
	if len(got.Regular) != 0 {
		t.Errorf("regular = %q, want empty", itemIDs(got.Regular))
	}
	if ids := itemIDs(got.Window.Items); ids != "AC" {
		t.Errorf("window = %q, want AC", ids)
	}
}

func TestList_CategoryAndSearch(t *testing.T) {
	l, _ := testLister(slog.LevelError)
	got := l.List(services(false), sampleItems(), "service_type=t3&search=brand")
	if ids := itemIDs(got.Window.Items); ids != "D" {
		t.Errorf("window = %q, want D", ids)
	}
	if got.Filter.SearchQuery != "brand" || len(got.Filter.SelectedCategoryIDs) != 1 {
		t.Errorf("filter = %+v", got.Filter)
	}
}

func TestList_WarnsWhenFeaturedUnavailable(t *testing.T) {
	l, buf := testLister(slog.LevelWarn)
	l.List(services(false), sampleItems(), "")

	recs := records(t, buf)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1: %s", len(recs), buf.String())
	}
	if recs[0]["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", recs[0]["level"])
	}
	if recs[0]["collection"] != "services" {
		t.Errorf("collection = %v", recs[0]["collection"])
	}
	if recs[0]["component"] != "listing" {
		t.Errorf("component = %v", recs[0]["component"])
	}
}

func TestList_NoWarningWhenCapable(t *testing.T) {
	l, buf := testLister(slog.LevelWarn)
	l.List(services(true), sampleItems(), "")
	if buf.Len() != 0 {
		t.Errorf("unexpected diagnostics: %s", buf.String())
	}
}

func TestList_PagePastEndIsReported(t *testing.T) {
	l, buf := testLister(slog.LevelInfo)
	got := l.List(services(true), sampleItems(), "page=9")

	if len(got.Window.Items) != 0 {
		t.Errorf("window = %q, want empty", itemIDs(got.Window.Items))
	}
	if got.Pagination.CurrentPage != 9 {
		t.Errorf("page = %d, want 9 (not clamped)", got.Pagination.CurrentPage)
	}
	found := false
	for _, rec := range records(t, buf) {
		if rec["msg"] == "page past last page" {
			found = true
			if rec["total_pages"] != float64(3) {
				t.Errorf("total_pages = %v, want 3", rec["total_pages"])
			}
		}
	}
	if !found {
		t.Errorf("missing page-past-end diagnostic: %s", buf.String())
	}
}

func TestList_DebugSummary(t *testing.T) {
	l, buf := testLister(slog.LevelDebug)
	l.List(services(true), sampleItems(), "search=shop")
	recs := records(t, buf)
	last := recs[len(recs)-1]
	if last["msg"] != "listing computed" {
		t.Fatalf("last record = %v", last)
	}
	if last["matched"] != float64(2) {
		t.Errorf("matched = %v, want 2", last["matched"])
	}
}

func TestList_HugePage(t *testing.T) {
	l, _ := testLister(slog.LevelError)
	for _, capable := range []bool{false, true} {
		got := l.List(services(capable), sampleItems(), "page=4611686018427387905")
		if len(got.Window.Items) != 0 {
			t.Errorf("featured=%v: window = %q, want empty", capable, itemIDs(got.Window.Items))
		}
		if got.Links.HasNext || !got.Links.HasPrevious {
			t.Errorf("featured=%v: links = %+v", capable, got.Links)
		}
	}
}
