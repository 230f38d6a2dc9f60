package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "Showcase API",
		Version:     "v1",
		Description: "Listing service for services, case studies and team members",
		Endpoints: []endpointInfo{
			{"/api/v1/collections", []string{"GET"}, "Configured listing collections"},
			{"/api/v1/collections/{name}", []string{"GET"}, "Filtered, paged listing. Query: search, <taxonomy> (repeatable), featured=true, page"},
			{"/api/v1/collections/{name}/categories", []string{"GET"}, "Terms of the collection's taxonomy"},
			{"/api/v1/collections/{name}/items/{slug}", []string{"GET", "PUT", "DELETE"}, "Single item; PUT upserts"},
			{"/api/v1/categories/{id}", []string{"PUT"}, "Upsert a taxonomy term"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
