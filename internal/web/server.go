// Package web serves the studio site and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/studio/internal/portfolio"
	"github.com/jmylchreest/studio/internal/theme"
)

//go:embed static/*
var staticFiles embed.FS

// Portfolio is the data the handlers read.
type Portfolio interface {
	Collection(ctx context.Context) portfolio.Result
	Item(ctx context.Context, id string) portfolio.ItemResult
	ItemFrom(items []portfolio.Item, id string) portfolio.ItemResult
	Statistics(ctx context.Context) portfolio.StatisticsResult
	Columns(ctx context.Context) portfolio.ColumnsResult
}

// Themer composes a theme for a thumbnail.
type Themer interface {
	Compose(ctx context.Context, imageURL string, mode theme.Mode) theme.Theme
}

// Cache versions portfolio pages for downstream caches.
type Cache interface {
	ETag(key string) string
	Invalidate(ctx context.Context) (uint64, error)
}

// Options configures a Server.
type Options struct {
	Addr          string
	AdminPassword string
	BriefingURL   string
	DefaultMode   theme.Mode
	Logger        hclog.Logger
}

// Server is the HTTP front end.
type Server struct {
	opts      Options
	router    chi.Router
	portfolio Portfolio
	themer    Themer
	cache     Cache
	logger    hclog.Logger
}

// NewServer wires the routes.
func NewServer(opts Options, p Portfolio, t Themer, c Cache) *Server {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.DefaultMode != theme.ModeLight {
		opts.DefaultMode = theme.ModeDark
	}
	s := &Server{
		opts:      opts,
		router:    chi.NewRouter(),
		portfolio: p,
		themer:    t,
		cache:     c,
		logger:    opts.Logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to create static filesystem: %v", err))
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/portfolio", s.handleAPIPortfolio)
		r.Get("/portfolio/{id}", s.handleAPIPortfolioItem)
		r.Get("/portfolio/{id}/theme", s.handleAPITheme)
		r.Get("/statistics", s.handleAPIStatistics)
		r.Get("/columns", s.handleAPIColumns)
		r.Post("/admin/auth", s.handleAPIAdminAuth)
		r.Post("/admin/update-cache", s.handleAPIUpdateCache)
	})

	r.Get("/", s.handleHome)
	r.Get("/about", s.handleAbout)
	r.Get("/services", s.handleServices)
	r.Get("/portfolio", s.handlePortfolio)
	r.Get("/portfolio/{id}", s.handlePortfolioDetail)
	r.Get("/briefing", s.handleBriefing)
	r.Get("/admin", s.handleAdmin)
	r.NotFound(s.handleNotFound)
}

// ServeHTTP lets the server be mounted or driven by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("starting server", "addr", s.opts.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		s.logger.Info("server stopped")
		return nil
	}
	return err
}
