// Package server exposes booklet rendering and the kit catalog over HTTP.
//
// The server renders booklets on demand and does not own an output tree:
// part references inside a served booklet are bare file names, and pairing
// them with actual images is left to the client that downloads the kit.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skyforge/astropress/pkg/cache"
	"github.com/skyforge/astropress/pkg/kit"
	"github.com/skyforge/astropress/pkg/observability"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8787"

	// DefaultTimeout bounds request handling, including a cold render.
	DefaultTimeout = 30 * time.Second
)

// Config contains server configuration. The zero value is usable and serves
// on DefaultAddr without caching.
type Config struct {
	Addr     string
	Cache    cache.Cache
	CacheTTL time.Duration
	Timeout  time.Duration
	Logger   *log.Logger
}

// Server renders booklets over HTTP through a shared kit.Runner.
type Server struct {
	addr    string
	ttl     time.Duration
	timeout time.Duration
	runner  *kit.Runner
	logger  *log.Logger
}

// New creates a Server from cfg, applying defaults for unset fields.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	// Scope cache keys so the server can share a Redis instance with other
	// tools without collisions.
	keyer := cache.NewScopedKeyer(nil, "astropress:")
	return &Server{
		addr:    cfg.Addr,
		ttl:     cfg.CacheTTL,
		timeout: cfg.Timeout,
		runner:  kit.NewRunner(cfg.Cache, keyer, cfg.Logger),
		logger:  cfg.Logger,
	}
}

// Handler returns the server's HTTP handler tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/languages", s.handleLanguages)
		r.Get("/locations", s.handleLocations)
		r.Get("/booklet", s.handleBooklet)
	})
	return r
}

// Run starts the server and blocks until ctx is canceled or the listener
// fails, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// observe bridges requests into the app logger and the server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
