package server

import (
	"net/http"
	"runtime"
	"time"
)

// Version is the server version reported by /health.
const Version = "0.1.0"

type healthResponse struct {
	Status      string   `json:"status"`
	Version     string   `json:"version"`
	GoVersion   string   `json:"go_version"`
	Uptime      string   `json:"uptime"`
	Store       string   `json:"store"`
	Collections []string `json:"collections"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	names := make([]string, 0, len(s.site.Collections))
	storeStatus := "ok"
	for _, c := range s.site.Collections {
		names = append(names, c.Name)
	}
	if len(names) > 0 {
		if _, err := s.store.ListCategories(r.Context(), s.site.Collections[0].Taxonomy); err != nil {
			s.logger.Warn("store health check failed", "error", err)
			storeStatus = "unavailable"
		}
	}

	respondOK(w, reqID, healthResponse{
		Status:      "healthy",
		Version:     Version,
		GoVersion:   runtime.Version(),
		Uptime:      time.Since(s.startTime).Round(time.Second).String(),
		Store:       storeStatus,
		Collections: names,
	})
}
