// Package server exposes the content catalog over HTTP: a JSON API for
// reading and mutating registry contents, a WebSocket change feed, and
// Prometheus metrics.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/library"
	"github.com/EKINSOL-DEV/crewhub-sub011/internal/modfetch"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/content"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/modkit"
)

// Options configures a Server. Catalog and Loader are required; the rest
// have working defaults.
type Options struct {
	Catalog *content.Catalog
	Loader  *modkit.Loader

	// Library persists creator props registered via the API. Optional.
	Library *library.Library

	// Fetcher downloads mod packs for POST /api/mods. Optional; mod
	// installation returns an error without one.
	Fetcher *modfetch.Fetcher

	Logger *slog.Logger

	// Registry receives the server's Prometheus metrics. Defaults to
	// prometheus.DefaultRegisterer. A fresh registry per test avoids
	// duplicate-registration panics.
	Registry prometheus.Registerer

	// Metrics exposes GET /metrics when true.
	Metrics bool
}

// Server is the CrewHub content API.
type Server struct {
	catalog *content.Catalog
	loader  *modkit.Loader
	lib     *library.Library
	fetcher *modfetch.Fetcher
	logger  *slog.Logger
	metrics *Metrics
	hub     *FeedHub

	exposeMetrics bool
	gatherer      prometheus.Gatherer
}

// New assembles a server over the given catalog. It subscribes the
// metrics and the change feed to every registry; both stay in sync with
// mutations from any source (API, mod loader, or in-process callers).
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg := opts.Registry
	var gatherer prometheus.Gatherer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
		gatherer = prometheus.DefaultGatherer
	} else if r, ok := reg.(prometheus.Gatherer); ok {
		gatherer = r
	}

	metrics := NewMetrics(reg)
	metrics.ObserveCatalog(opts.Catalog)

	hub := NewFeedHub(logger, metrics)
	hub.Bind(opts.Catalog)

	return &Server{
		catalog:       opts.Catalog,
		loader:        opts.Loader,
		lib:           opts.Library,
		fetcher:       opts.Fetcher,
		logger:        logger,
		metrics:       metrics,
		hub:           hub,
		exposeMetrics: opts.Metrics,
		gatherer:      gatherer,
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(s.traceRequests)
	r.Use(s.measureRequests)

	r.Route("/api", func(r chi.Router) {
		r.Route("/content", func(r chi.Router) {
			r.Get("/props/{id}/usage", s.handlePropUsage)

			r.Get("/{kind}", s.handleListContent)
			r.Post("/{kind}", s.handleRegisterContent)
			r.Get("/{kind}/{id}", s.handleGetContent)
			r.Delete("/{kind}/{id}", s.handleDeleteContent)
		})

		r.Route("/mods", func(r chi.Router) {
			r.Get("/", s.handleListMods)
			r.Post("/", s.handleInstallMod)
			r.Delete("/{modID}", s.handleRemoveMod)
		})
	})

	r.Get("/ws", s.hub.ServeHTTP)
	r.Get("/healthz", s.handleHealthz)

	if s.exposeMetrics && s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// Close shuts down the change feed, disconnecting all clients.
func (s *Server) Close() {
	s.hub.Close()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"props":        s.catalog.Len(content.KindProps),
		"environments": s.catalog.Len(content.KindEnvironments),
		"blueprints":   s.catalog.Len(content.KindBlueprints),
		"mods":         len(s.loader.Installed()),
	})
}
