package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/showcase/internal/config"
	"github.com/me/showcase/internal/logging"
	"github.com/me/showcase/internal/server"
	"github.com/me/showcase/internal/store"
	"github.com/me/showcase/pkg/model"
)

const fixtureYAML = `
categories:
  - {id: t1, taxonomy: service_type, name: E-commerce}
  - {id: t2, taxonomy: service_type, name: Marketing}
  - {id: t3, taxonomy: service_type, name: Branding}
items:
  - {collection: services, title: Shopify Store, categories: [t1], date: 2025-05-05, excerpt_html: "<p>Online <em>shops</em></p>"}
  - {collection: services, title: Marketing, categories: [t2], date: 2025-05-04}
  - {collection: services, title: E-shop Build, categories: [t1], date: 2025-05-03}
  - {collection: services, title: Brand Refresh, categories: [t3], date: 2025-05-02}
  - {collection: services, title: SEO Audit, categories: [t2], date: 2025-05-01}
`

// startTestServer starts a server with an in-memory SQLite store and returns the URL.
func startTestServer(t *testing.T) string {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:", logging.Discard())
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	site := &config.Site{
		Name: "Test",
		Collections: []model.Collection{
			{Name: "services", Title: "Services", Path: "/services", Taxonomy: "service_type", ItemsPerPage: 2},
		},
	}
	srv := server.New(config.DefaultServerConfig(), st, logging.Discard(), server.WithSite(site))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

// importFixture writes fixtureYAML to a temp file and imports it.
func importFixture(t *testing.T, url string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	if err := os.WriteFile(path, []byte(fixtureYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "--server", url, "import", path)
	if err != nil {
		t.Fatalf("import error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Imported 3 categories and 5 items") {
		t.Errorf("import output = %q", out)
	}
}

func TestCollectionsCommand(t *testing.T) {
	url := startTestServer(t)
	out, err := runCLI(t, "--server", url, "collections")
	if err != nil {
		t.Fatalf("collections error: %v", err)
	}
	if !strings.Contains(out, "services") || !strings.Contains(out, "service_type") {
		t.Errorf("output missing collection:\n%s", out)
	}
}

func TestListCommand(t *testing.T) {
	url := startTestServer(t)
	importFixture(t, url)

	out, err := runCLI(t, "--server", url, "list", "services", "--page", "2")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	for _, want := range []string{"e-shop-build", "brand-refresh", "(3-4 of 5 items)", "Pages: < 1 [2] 3 >"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "shopify-store") {
		t.Errorf("page 2 contains a page 1 item:\n%s", out)
	}
}

func TestListCommand_Filters(t *testing.T) {
	url := startTestServer(t)
	importFixture(t, url)

	out, err := runCLI(t, "--server", url, "list", "services", "--search", "SHOP")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(out, "shopify-store") || !strings.Contains(out, "e-shop-build") || strings.Contains(out, "Pages:") {
		t.Errorf("search output:\n%s", out)
	}

	out, err = runCLI(t, "--server", url, "list", "services", "--category", "t3", "--category", "t2")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(out, "(1-2 of 3 items)") || !strings.Contains(out, "marketing") {
		t.Errorf("category output:\n%s", out)
	}

	out, err = runCLI(t, "--server", url, "list", "services", "--search", "nothing-matches")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(out, "No items found.") {
		t.Errorf("empty output:\n%s", out)
	}
}

func TestListCommand_UnknownCollection(t *testing.T) {
	url := startTestServer(t)
	if _, err := runCLI(t, "--server", url, "list", "blog"); err == nil {
		t.Fatal("expected error for unknown collection")
	}
}

func TestShowAndDeleteCommands(t *testing.T) {
	url := startTestServer(t)
	importFixture(t, url)

	out, err := runCLI(t, "--server", url, "show", "services", "shopify-store")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	for _, want := range []string{"Title:      Shopify Store", "Categories: t1", "Date:       2025-05-05", "Excerpt:    Online shops"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}

	if _, err := runCLI(t, "--server", url, "delete", "services", "shopify-store"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := runCLI(t, "--server", url, "show", "services", "shopify-store"); err == nil {
		t.Error("expected error showing a deleted item")
	}
	if _, err := runCLI(t, "--server", url, "delete", "services", "shopify-store"); err == nil {
		t.Error("expected error deleting twice")
	}
}

func TestAuditCommand(t *testing.T) {
	url := startTestServer(t)
	importFixture(t, url)

	out, err := runCLI(t, "--server", url, "audit", url+"/services?page=2")
	if err != nil {
		t.Fatalf("audit error: %v\n%s", err, out)
	}
	if strings.Contains(out, "FAIL") {
		t.Errorf("audit output:\n%s", out)
	}

	out, err = runCLI(t, "--server", url, "audit", url+"/services/missing")
	if err == nil {
		t.Fatalf("expected audit failure on the 404 page:\n%s", out)
	}
	if !strings.Contains(out, "HTTP 404") || !strings.Contains(out, "FAIL  meta description") {
		t.Errorf("audit output:\n%s", out)
	}
}

func TestPageBar(t *testing.T) {
	m := model.PageLinkModel{
		PageNumbers: []model.PageLink{model.Page(1), model.Gap(), model.Page(9), model.Page(10)},
		CurrentPage: 10,
		HasPrevious: true,
	}
	if got := pageBar(m); got != "< 1 ... 9 [10]" {
		t.Errorf("pageBar = %q", got)
	}
}
