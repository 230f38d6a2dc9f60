package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/me/showcase/internal/logging"
	"github.com/me/showcase/pkg/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(":memory:", logging.Discard())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 9, 0, 0, 0, time.UTC)
}

func sampleItem(slug string, d int, cats ...string) *model.ContentItem {
	return &model.ContentItem{
		ID:          "item_" + slug,
		Collection:  "case-studies",
		Title:       strings.ToUpper(slug),
		ExcerptHTML: "<p>" + slug + "</p>",
		Slug:        slug,
		CategoryIDs: cats,
		Date:        day(d),
	}
}

// --- Migration tests ---

func TestMigrate_Idempotent(t *testing.T) {
	st := testStore(t)
	// Migrate a second time; should not error.
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	ok, err := columnExists(context.Background(), st.db, "categories", "description")
	if err != nil {
		t.Fatalf("columnExists: %v", err)
	}
	if !ok {
		t.Error("categories.description missing after migrate")
	}
}

// --- Item tests ---

func TestUpsertAndGetItem(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	item := sampleItem("shopify-store", 3, "t4", "t1")
	item.Featured = true

	if err := st.UpsertItem(ctx, item); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := st.GetItem(ctx, "case-studies", "shopify-store")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("got nil item")
	}
	if got.ID != item.ID || got.Title != item.Title || got.ExcerptHTML != item.ExcerptHTML {
		t.Errorf("got %+v, want %+v", got, item)
	}
	if !got.Featured {
		t.Error("featured not stored")
	}
	if !got.Date.Equal(item.Date) {
		t.Errorf("date = %v, want %v", got.Date, item.Date)
	}
	if strings.Join(got.CategoryIDs, ",") != "t4,t1" {
		t.Errorf("categories = %v, want [t4 t1] in order", got.CategoryIDs)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	st := testStore(t)
	got, err := st.GetItem(context.Background(), "case-studies", "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestUpsertItem_ReplacesBySlug(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	if err := st.UpsertItem(ctx, sampleItem("brand", 1, "t1", "t2")); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	update := sampleItem("brand", 2, "t3")
	update.ID = ""
	update.Title = "Brand Refresh"
	if err := st.UpsertItem(ctx, update); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if update.ID != "item_brand" {
		t.Errorf("ID = %q, want existing item_brand", update.ID)
	}

	items, err := st.ListItems(ctx, "case-studies")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Title != "Brand Refresh" {
		t.Errorf("title = %q", items[0].Title)
	}
	if strings.Join(items[0].CategoryIDs, ",") != "t3" {
		t.Errorf("categories = %v, want [t3]", items[0].CategoryIDs)
	}
}

func TestUpsertItem_GeneratesID(t *testing.T) {
	st := testStore(t)
	item := sampleItem("no-id", 1)
	item.ID = ""
	if err := st.UpsertItem(context.Background(), item); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !strings.HasPrefix(item.ID, "item_") {
		t.Errorf("ID = %q, want generated item_ prefix", item.ID)
	}
}

func TestListItems_OrderAndScope(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	for _, it := range []*model.ContentItem{
		sampleItem("older", 1, "t1"),
		sampleItem("newest", 9, "t2", "t1"),
		sampleItem("middle-b", 5),
		sampleItem("middle-a", 5, "t3"),
	} {
		if err := st.UpsertItem(ctx, it); err != nil {
			t.Fatalf("upsert %s: %v", it.Slug, err)
		}
	}
	other := sampleItem("service", 20)
	other.Collection = "services"
	if err := st.UpsertItem(ctx, other); err != nil {
		t.Fatalf("upsert other: %v", err)
	}

	items, err := st.ListItems(ctx, "case-studies")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var slugs []string
	for _, it := range items {
		slugs = append(slugs, it.Slug)
	}
	if got, want := strings.Join(slugs, ","), "newest,middle-a,middle-b,older"; got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
	if got := strings.Join(items[0].CategoryIDs, ","); got != "t2,t1" {
		t.Errorf("newest categories = %s, want t2,t1", got)
	}
	if len(items[2].CategoryIDs) != 0 {
		t.Errorf("middle-b categories = %v, want none", items[2].CategoryIDs)
	}
}

func TestListItems_EmptyCollection(t *testing.T) {
	st := testStore(t)
	items, err := st.ListItems(context.Background(), "team")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("items = %v, want empty non-nil", items)
	}
}

func TestDeleteItem(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	if err := st.UpsertItem(ctx, sampleItem("gone", 1, "t1")); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	deleted, err := st.DeleteItem(ctx, "case-studies", "gone")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Error("deleted = false, want true")
	}
	deleted, err = st.DeleteItem(ctx, "case-studies", "gone")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Error("second delete reported a row")
	}

	var n int
	if err := st.db.QueryRow(`SELECT COUNT(*) FROM item_categories`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("item_categories rows = %d, want 0", n)
	}
}

// --- Category tests ---

func TestUpsertAndListCategories(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	cats := []*model.Category{
		{ID: "t2", Taxonomy: "project_type", Name: "Web", Slug: "web"},
		{ID: "t1", Taxonomy: "project_type", Name: "E-commerce", Slug: "e-commerce", Description: "Online stores"},
		{ID: "d1", Taxonomy: "department", Name: "Design", Slug: "design"},
	}
	for _, c := range cats {
		if err := st.UpsertCategory(ctx, c); err != nil {
			t.Fatalf("upsert %s: %v", c.ID, err)
		}
	}
	if err := st.UpsertCategory(ctx, &model.Category{ID: "t2", Taxonomy: "project_type", Name: "Websites", Slug: "web"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := st.ListCategories(ctx, "project_type")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("categories = %d, want 2", len(got))
	}
	if got[0].ID != "t1" || got[1].Name != "Websites" {
		t.Errorf("categories = %+v, %+v", got[0], got[1])
	}
	if got[0].Description != "Online stores" {
		t.Errorf("description = %q", got[0].Description)
	}
}
