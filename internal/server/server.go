package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/showcase/internal/config"
	"github.com/me/showcase/internal/listing"
	"github.com/me/showcase/internal/store"
	"github.com/me/showcase/internal/ui"
	"github.com/me/showcase/pkg/model"
)

// Server is the showcase REST API and HTML server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	store     store.Store
	site      *config.Site
	lister    *listing.Lister
	ui        *ui.UI // HTML listing pages
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithSite replaces the built-in collections.
func WithSite(site *config.Site) Option {
	return func(s *Server) {
		s.site = site
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
		site:      config.DefaultSite(),
		lister:    listing.New(logger),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ui = ui.New(st, s.site, s.lister, logger)

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	// HTML listing pages
	s.ui.RegisterRoutes(r)

	// API routes (JSON)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", s.handleDiscovery)
		r.Get("/health", s.handleHealth)

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", s.handleListCollections)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.handleListing)
				r.Get("/categories", s.handleListCategories)
				r.Route("/items/{slug}", func(r chi.Router) {
					r.Get("/", s.handleGetItem)
					r.Put("/", s.handlePutItem)
					r.Delete("/", s.handleDeleteItem)
				})
			})
		})

		r.Put("/categories/{id}", s.handlePutCategory)
	})
}

// collection resolves the {name} URL parameter, writing a 404 when the
// collection is not configured.
func (s *Server) collection(w http.ResponseWriter, r *http.Request) (model.Collection, bool) {
	name := chi.URLParam(r, "name")
	coll, ok := s.site.Collection(name)
	if !ok {
		respondError(w, RequestIDFromContext(r.Context()), model.NewNotFoundError("Collection", name))
	}
	return coll, ok
}

// internalError logs err and writes a generic 500.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	reqID := RequestIDFromContext(r.Context())
	s.logger.Error(msg, "error", err, "request_id", reqID)
	respondError(w, reqID, model.NewInternalError(msg))
}
