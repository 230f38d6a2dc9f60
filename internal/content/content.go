// Package content loads listing fixtures (categories and items) from YAML or
// JSON files and writes them to a store.
package content

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/me/showcase/internal/store"
	"github.com/me/showcase/pkg/model"
)

// Bundle is a parsed fixture file.
type Bundle struct {
	Categories []*model.Category
	Items      []*model.ContentItem
}

type fixture struct {
	Categories []fixtureCategory `yaml:"categories"`
	Items      []fixtureItem     `yaml:"items"`
}

type fixtureCategory struct {
	ID          string `yaml:"id"`
	Taxonomy    string `yaml:"taxonomy"`
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type fixtureItem struct {
	ID          string   `yaml:"id"`
	Collection  string   `yaml:"collection"`
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	ExcerptHTML string   `yaml:"excerpt_html"`
	Categories  []string `yaml:"categories"`
	Featured    bool     `yaml:"featured"`
	Date        string   `yaml:"date"`
}

// Load reads a fixture file. JSON is accepted as well since it is valid YAML.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse decodes fixture bytes, fills derived fields and validates them.
func Parse(data []byte) (*Bundle, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	var problems []string
	b := &Bundle{}
	for i, fc := range f.Categories {
		if fc.ID == "" || fc.Taxonomy == "" || fc.Name == "" {
			problems = append(problems, fmt.Sprintf("categories[%d]: id, taxonomy and name are required", i))
			continue
		}
		slug := fc.Slug
		if slug == "" {
			slug = Slugify(fc.Name)
		}
		b.Categories = append(b.Categories, &model.Category{
			ID:          fc.ID,
			Taxonomy:    fc.Taxonomy,
			Name:        fc.Name,
			Slug:        slug,
			Description: fc.Description,
		})
	}

	for i, fi := range f.Items {
		where := fmt.Sprintf("items[%d]", i)
		if fi.Collection == "" || fi.Title == "" {
			problems = append(problems, where+": collection and title are required")
			continue
		}
		date, err := ParseDate(fi.Date)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", where, err))
			continue
		}
		item := &model.ContentItem{
			ID:          fi.ID,
			Collection:  fi.Collection,
			Title:       fi.Title,
			Slug:        fi.Slug,
			ExcerptHTML: fi.ExcerptHTML,
			CategoryIDs: fi.Categories,
			Featured:    fi.Featured,
			Date:        date,
		}
		if item.Slug == "" {
			item.Slug = Slugify(item.Title)
		}
		if item.ID == "" {
			item.ID = "item_" + uuid.New().String()
		}
		b.Items = append(b.Items, item)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid fixture: %s", strings.Join(problems, "; "))
	}
	return b, nil
}

// ParseDate accepts RFC 3339 timestamps and plain dates. An empty string is
// the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want RFC 3339 or YYYY-MM-DD)", s)
}

// Slugify derives a URL slug from a title: accents dropped, lower case,
// runs of other characters collapsed to a single dash.
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, title)
	if err != nil {
		plain = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Apply writes categories first, then items.
func Apply(ctx context.Context, st store.Store, b *Bundle) error {
	for _, c := range b.Categories {
		if err := st.UpsertCategory(ctx, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.ID, err)
		}
	}
	for _, item := range b.Items {
		if err := st.UpsertItem(ctx, item); err != nil {
			return fmt.Errorf("upsert item %s/%s: %w", item.Collection, item.Slug, err)
		}
	}
	return nil
}
