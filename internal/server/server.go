package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/kabar/internal/cache"
	"github.com/ziadkadry99/kabar/internal/filter"
	"github.com/ziadkadry99/kabar/internal/render"
	"github.com/ziadkadry99/kabar/internal/view"
)

// SocketPath is where live search sessions connect.
const SocketPath = "/ws/search"

// Config holds server configuration.
type Config struct {
	Port           int
	AllowAll       bool // allow all CORS origins (dev mode)
	SiteTitle      string
	Debounce       time.Duration
	MatchExcerpt   bool
	WordsPerMinute int
}

// Server hosts the list and detail pages, the JSON API and live search.
type Server struct {
	cfg        Config
	loader     view.Loader
	store      cache.Store
	renderer   *render.Renderer
	list       *view.ListController
	detail     *view.DetailController
	logger     *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// DetailHref links a card to the served detail page.
func DetailHref(id string) string {
	return "/article?id=" + url.QueryEscape(id)
}

// New creates a server over the given loader. store is the cache the loader
// reads through and is cleared by the clearcache side channel; it may be nil.
func New(cfg Config, loader view.Loader, store cache.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	renderer := render.New(
		render.WithWordsPerMinute(cfg.WordsPerMinute),
		render.WithDetailLink(DetailHref),
	)
	s := &Server{
		cfg:      cfg,
		loader:   loader,
		store:    store,
		renderer: renderer,
		list: view.NewListController(loader, renderer,
			view.WithFilterOptions(filter.Options{MatchExcerpt: cfg.MatchExcerpt}),
			view.WithListLogger(logger),
		),
		detail: view.NewDetailController(loader, renderer, logger),
		logger: logger,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))
	r.Use(s.clearCache)

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Live search connections outlive the request timeout.
	r.Get(SocketPath, s.handleLiveSearch)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		s.registerPages(r)
		s.registerAPI(r)
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("kabar server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
