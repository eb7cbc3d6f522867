// Package web serves the browser front: the search and trending page, movie
// detail pages, a JSON API over the same views, health and metrics endpoints.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/s0up4200/flickhunt/discover"
	"github.com/s0up4200/flickhunt/filter"
	"github.com/s0up4200/flickhunt/tmdb"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front over a movie lookup client
type Server struct {
	api      tmdb.API
	filters  *filter.Manager
	logger   zerolog.Logger
	validate *validator.Validate
	pages    map[string]*template.Template
	router   *mux.Router
	limiter  *rateLimiter
	debounce time.Duration
	version  string
}

// Option configures a Server
type Option func(*Server)

// WithDebounce sets the typing pause the page waits for before searching
func WithDebounce(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithFilters sets the filter manager used by the JSON API
func WithFilters(m *filter.Manager) Option {
	return func(s *Server) {
		s.filters = m
	}
}

// WithRateLimit limits each client to rps requests per second with the given burst
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps > 0 && burst > 0 {
			s.limiter = newRateLimiter(rps, burst)
		}
	}
}

// WithVersion sets the version reported by the health endpoint
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// New creates a server. Templates are parsed up front so a broken template
// fails at startup.
func New(api tmdb.API, logger zerolog.Logger, opts ...Option) (*Server, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		api:      api,
		filters:  filter.NewManager(filter.WithLogger(logger)),
		logger:   logger,
		validate: validator.New(),
		pages:    pages,
		debounce: discover.DefaultDebounce,
		version:  "dev",
	}

	for _, opt := range opts {
		opt(s)
	}

	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.instrument(s.recoverPanic(s.rateLimit(s.router)))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info().Msg("Server stopped")
	return nil
}
