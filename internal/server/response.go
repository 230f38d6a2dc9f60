package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/me/showcase/pkg/model"
)

// newRequestID returns a short identifier for requests that arrive without
// a usable X-Request-ID.
func newRequestID() string {
	return "req_" + uuid.New().String()[:8]
}

func respondOK(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusOK, reqID, data, nil, nil)
}

// respondCreated answers a PUT that stored a new item.
func respondCreated(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusCreated, reqID, data, nil, nil)
}

// respondListing writes a computed listing with the pagination block derived
// from its page window.
func respondListing(w http.ResponseWriter, reqID string, l *model.Listing) {
	respondJSON(w, http.StatusOK, reqID, l, model.PaginationFor(l), nil)
}

// respondError writes apiErr with the HTTP status that matches its code.
func respondError(w http.ResponseWriter, reqID string, apiErr *model.APIError) {
	respondJSON(w, statusFor(apiErr.Code), reqID, nil, nil, apiErr)
}

func statusFor(code model.ErrorCode) int {
	switch code {
	case model.ErrValidation:
		return http.StatusBadRequest
	case model.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, reqID string, data any, pg *model.Pagination, apiErr *model.APIError) {
	resp := model.Response{
		Status:     "ok",
		RequestID:  reqID,
		Timestamp:  time.Now().UTC(),
		Data:       data,
		Pagination: pg,
		Error:      apiErr,
	}
	if apiErr != nil {
		resp.Status = "error"
	}

	w.Header().Set("Content-Type", "application/json")
	if pg != nil {
		w.Header().Set("X-Total-Count", strconv.Itoa(pg.Total))
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
