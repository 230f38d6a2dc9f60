package server

import "net/http"

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	respondOK(w, RequestIDFromContext(r.Context()), s.site.Collections)
}

// handleListing runs the listing pipeline over the collection's items using
// the request's query string.
func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	coll, ok := s.collection(w, r)
	if !ok {
		return
	}

	items, err := s.store.ListItems(r.Context(), coll.Name)
	if err != nil {
		s.internalError(w, r, "Failed to load items", err)
		return
	}

	l := s.lister.ListValues(coll, items, r.URL.Query())
	respondListing(w, RequestIDFromContext(r.Context()), l)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	coll, ok := s.collection(w, r)
	if !ok {
		return
	}

	cats, err := s.store.ListCategories(r.Context(), coll.Taxonomy)
	if err != nil {
		s.internalError(w, r, "Failed to load categories", err)
		return
	}
	respondOK(w, RequestIDFromContext(r.Context()), cats)
}
