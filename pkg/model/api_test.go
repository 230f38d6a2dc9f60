package model

import "testing"

func TestPaginationFor(t *testing.T) {
	l := &Listing{
		Pagination: PaginationState{CurrentPage: 2, ItemsPerPage: 3},
		Window:     PageWindow{TotalItems: 7, TotalPages: 3},
		Links:      PageLinkModel{CurrentPage: 2, HasPrevious: true, HasNext: true},
	}
	pg := PaginationFor(l)
	if pg.Total != 7 || pg.Page != 2 || pg.PerPage != 3 || pg.TotalPages != 3 {
		t.Errorf("pagination = %+v", pg)
	}
	if !pg.HasMore {
		t.Error("HasMore = false, want true")
	}
}
