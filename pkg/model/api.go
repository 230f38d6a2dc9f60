package model

import "time"

// Response is the standard API response envelope.
type Response struct {
	Status     string      `json:"status"`
	RequestID  string      `json:"request_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *APIError   `json:"error"`
}

// Pagination holds page-based pagination metadata for listing endpoints.
type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// PaginationFor derives the envelope metadata from a computed listing.
func PaginationFor(l *Listing) *Pagination {
	return &Pagination{
		Total:      l.Window.TotalItems,
		Page:       l.Pagination.CurrentPage,
		PerPage:    l.Pagination.ItemsPerPage,
		TotalPages: l.Window.TotalPages,
		HasMore:    l.Links.HasNext,
	}
}
