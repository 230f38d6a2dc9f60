package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/me/showcase/internal/content"
	"github.com/me/showcase/pkg/model"
)

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	coll, ok := s.collection(w, r)
	if !ok {
		return
	}
	slug := chi.URLParam(r, "slug")

	item, err := s.store.GetItem(r.Context(), coll.Name, slug)
	if err != nil {
		s.internalError(w, r, "Failed to load item", err)
		return
	}
	if item == nil {
		respondError(w, reqID, model.NewNotFoundError("Item", slug))
		return
	}
	respondOK(w, reqID, item)
}

type putItemRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ExcerptHTML string   `json:"excerpt_html"`
	CategoryIDs []string `json:"category_ids"`
	Featured    bool     `json:"featured"`
	Date        string   `json:"date"`
}

// handlePutItem upserts the item at /collections/{name}/items/{slug}.
// Responds 201 when the item did not exist before.
func (s *Server) handlePutItem(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	coll, ok := s.collection(w, r)
	if !ok {
		return
	}
	slug := chi.URLParam(r, "slug")

	var req putItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}

	var details []model.FieldError
	if strings.TrimSpace(req.Title) == "" {
		details = append(details, model.FieldError{Field: "title", Message: "required"})
	}
	date, err := content.ParseDate(req.Date)
	if err != nil {
		details = append(details, model.FieldError{Field: "date", Message: err.Error()})
	}
	if len(details) > 0 {
		respondError(w, reqID, model.NewValidationError("Invalid item", details...))
		return
	}

	existing, err := s.store.GetItem(r.Context(), coll.Name, slug)
	if err != nil {
		s.internalError(w, r, "Failed to load item", err)
		return
	}

	item := &model.ContentItem{
		ID:          req.ID,
		Collection:  coll.Name,
		Title:       req.Title,
		ExcerptHTML: req.ExcerptHTML,
		Slug:        slug,
		CategoryIDs: req.CategoryIDs,
		Featured:    req.Featured,
		Date:        date,
	}
	if err := s.store.UpsertItem(r.Context(), item); err != nil {
		s.internalError(w, r, "Failed to save item", err)
		return
	}

	if existing == nil {
		respondCreated(w, reqID, item)
		return
	}
	respondOK(w, reqID, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	coll, ok := s.collection(w, r)
	if !ok {
		return
	}
	slug := chi.URLParam(r, "slug")

	deleted, err := s.store.DeleteItem(r.Context(), coll.Name, slug)
	if err != nil {
		s.internalError(w, r, "Failed to delete item", err)
		return
	}
	if !deleted {
		respondError(w, reqID, model.NewNotFoundError("Item", slug))
		return
	}
	respondOK(w, reqID, map[string]any{"deleted": true})
}

type putCategoryRequest struct {
	Taxonomy    string `json:"taxonomy"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (s *Server) handlePutCategory(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req putCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}

	var details []model.FieldError
	if req.Taxonomy == "" {
		details = append(details, model.FieldError{Field: "taxonomy", Message: "required"})
	}
	if req.Name == "" {
		details = append(details, model.FieldError{Field: "name", Message: "required"})
	}
	if len(details) > 0 {
		respondError(w, reqID, model.NewValidationError("Invalid category", details...))
		return
	}

	cat := &model.Category{
		ID:          id,
		Taxonomy:    req.Taxonomy,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if cat.Slug == "" {
		cat.Slug = content.Slugify(cat.Name)
	}
	if err := s.store.UpsertCategory(r.Context(), cat); err != nil {
		s.internalError(w, r, "Failed to save category", err)
		return
	}
	respondOK(w, reqID, cat)
}
