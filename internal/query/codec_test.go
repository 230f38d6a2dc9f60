package query

import (
	"reflect"
	"testing"

	"github.com/me/showcase/pkg/model"
)

func caseStudies() Codec {
	return Codec{Taxonomy: "project_type", ItemsPerPage: 6}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantFilter model.FilterState
		wantPage   int
	}{
		{
			name:     "empty",
			raw:      "",
			wantPage: 1,
		},
		{
			name:       "leading question mark",
			raw:        "?search=shop&page=2",
			wantFilter: model.FilterState{SearchQuery: "shop"},
			wantPage:   2,
		},
		{
			name: "repeated taxonomy key",
			raw:  "project_type=t1&project_type=t4&project_type=t1",
			wantFilter: model.FilterState{
				SelectedCategoryIDs: []string{"t1", "t4"},
			},
			wantPage: 1,
		},
		{
			name:       "other taxonomy ignored",
			raw:        "service_type=t1",
			wantFilter: model.FilterState{},
			wantPage:   1,
		},
		{
			name:       "featured true",
			raw:        "featured=true",
			wantFilter: model.FilterState{FeaturedOnly: true},
			wantPage:   1,
		},
		{
			name:       "featured other value",
			raw:        "featured=1",
			wantFilter: model.FilterState{},
			wantPage:   1,
		},
		{
			name:     "non-numeric page",
			raw:      "page=abc",
			wantPage: 1,
		},
		{
			name:     "zero page",
			raw:      "page=0",
			wantPage: 1,
		},
		{
			name:     "negative page",
			raw:      "page=-4",
			wantPage: 1,
		},
		{
			name:     "page beyond range is kept",
			raw:      "page=99",
			wantPage: 99,
		},
		{
			name:     "huge page is kept",
			raw:      "page=4611686018427387905",
			wantPage: 4611686018427387905,
		},
		{
			name:     "page overflowing int",
			raw:      "page=99999999999999999999",
			wantPage: 1,
		},
		{
			name:       "search kept verbatim",
			raw:        "search=shop%20",
			wantFilter: model.FilterState{SearchQuery: "shop "},
			wantPage:   1,
		},
		{
			name:       "malformed escape keeps the rest",
			raw:        "search=%zz&page=3",
			wantFilter: model.FilterState{},
			wantPage:   3,
		},
		{
			name:       "encoded search",
			raw:        "search=e-shop+build",
			wantFilter: model.FilterState{SearchQuery: "e-shop build"},
			wantPage:   1,
		},
		{
			name:       "empty category values skipped",
			raw:        "project_type=&project_type=t2",
			wantFilter: model.FilterState{SelectedCategoryIDs: []string{"t2"}},
			wantPage:   1,
		},
	}

	c := caseStudies()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, p := c.Decode(tt.raw)
			if !reflect.DeepEqual(f, tt.wantFilter) {
				t.Errorf("filter = %+v, want %+v", f, tt.wantFilter)
			}
			if p.CurrentPage != tt.wantPage {
				t.Errorf("page = %d, want %d", p.CurrentPage, tt.wantPage)
			}
			if p.ItemsPerPage != 6 {
				t.Errorf("per page = %d, want 6", p.ItemsPerPage)
			}
		})
	}
}

func TestDecode_DefaultPerPage(t *testing.T) {
	_, p := Codec{Taxonomy: "department"}.Decode("")
	if p.ItemsPerPage != DefaultItemsPerPage {
		t.Errorf("per page = %d, want %d", p.ItemsPerPage, DefaultItemsPerPage)
	}
}

func TestEncode(t *testing.T) {
	c := caseStudies()
	tests := []struct {
		name     string
		filter   model.FilterState
		page     int
		override int
		want     string
	}{
		{"first page omitted", model.FilterState{}, 1, 0, ""},
		{"third page", model.FilterState{}, 3, 0, "page=3"},
		{
			name:   "filters then page",
			filter: model.FilterState{SearchQuery: "shop", SelectedCategoryIDs: []string{"t1", "t4"}, FeaturedOnly: true},
			page:   3,
			want:   "search=shop&project_type=t1&project_type=t4&featured=true&page=3",
		},
		{
			name:     "override to first page drops page",
			filter:   model.FilterState{SearchQuery: "shop"},
			page:     4,
			override: 1,
			want:     "search=shop",
		},
		{
			name:     "override keeps filters",
			filter:   model.FilterState{SelectedCategoryIDs: []string{"t2"}},
			page:     1,
			override: 5,
			want:     "project_type=t2&page=5",
		},
		{
			name:   "search is escaped",
			filter: model.FilterState{SearchQuery: "a&b c"},
			page:   1,
			want:   "search=a%26b+c",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.PaginationState{CurrentPage: tt.page, ItemsPerPage: 6}
			if got := c.Encode(tt.filter, p, tt.override); got != tt.want {
				t.Errorf("Encode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeDecode_Idempotent(t *testing.T) {
	c := caseStudies()
	raws := []string{
		"",
		"page=1",
		"page=7",
		"search=Shopify+Store&page=2",
		"project_type=t3&project_type=t1&featured=true",
		"featured=false&search=%20padded%20&project_type=t9&project_type=t9",
		"page=junk&search=x",
	}
	for _, raw := range raws {
		f, p := c.Decode(raw)
		f2, p2 := c.Decode(c.Encode(f, p, 0))
		if !reflect.DeepEqual(f, f2) {
			t.Errorf("%q: filter round trip %+v -> %+v", raw, f, f2)
		}
		if p != p2 {
			t.Errorf("%q: pagination round trip %+v -> %+v", raw, p, p2)
		}
	}
}

func TestHref(t *testing.T) {
	c := caseStudies()
	p := model.PaginationState{CurrentPage: 1, ItemsPerPage: 6}
	if got := c.Href("/case-studies", model.FilterState{}, p, 0); got != "/case-studies" {
		t.Errorf("Href = %q, want bare path", got)
	}
	if got := c.Href("/case-studies", model.FilterState{}, p, 2); got != "/case-studies?page=2" {
		t.Errorf("Href = %q", got)
	}
}

func TestIsReserved(t *testing.T) {
	for _, k := range []string{"search", "page", "featured"} {
		if !IsReserved(k) {
			t.Errorf("IsReserved(%q) = false", k)
		}
	}
	if IsReserved("department") {
		t.Error("IsReserved(department) = true")
	}
}
