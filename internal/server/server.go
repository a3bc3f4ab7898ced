// Package server exposes compose and render over HTTP.
//
// Routes:
//
//	GET  /health
//	GET  /api/v1/palette
//	POST /api/v1/compose          entry document -> filled .tex
//	POST /api/v1/render/{format}  entry document -> svg, png, pdf or tex
//	GET  /metrics
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/compose"
	"github.com/matzehuels/clevacompass/pkg/metrics"
	"github.com/matzehuels/clevacompass/pkg/render"
)

// maxBodyBytes bounds request documents.
const maxBodyBytes = 1 << 20

// Config configures a Server. Zero fields take defaults.
type Config struct {
	Addr     string
	Timeout  time.Duration     // per request, default 2m
	Template string            // default compose.DefaultTemplate()
	Palette  *compass.Palette  // default compass.DefaultPalette()
	Renderer *render.Renderer  // default render.New()
	Metrics  *metrics.Registry // nil disables /metrics
	Logger   *log.Logger
}

// Server is the HTTP API server.
type Server struct {
	cfg    Config
	router chi.Router
}

// New creates a server with all routes and middleware.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.Template == "" {
		cfg.Template = compose.DefaultTemplate()
	}
	if cfg.Palette == nil {
		cfg.Palette = compass.DefaultPalette()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.New(render.WithLogger(cfg.Logger))
	}
	s := &Server{cfg: cfg}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.Timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	r.Get("/health", s.handleHealth)
	if s.cfg.Metrics != nil {
		r.Handle("/metrics", s.cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/palette", s.handlePalette)
		r.Post("/compose", s.handleCompose)
		r.Post("/render/{format}", s.handleRender)
	})
	return r
}
