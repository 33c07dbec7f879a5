// Package server exposes form generation, schema export, validation and
// multi-step progress over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formcode/pkg/definition"
	"github.com/goliatone/go-formcode/pkg/orchestrator"
	"github.com/goliatone/go-formcode/pkg/stepper"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOrchestrator sets the generation pipeline.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		if orch != nil {
			s.orch = orch
		}
	}
}

// WithForms sets the catalog served by the steps endpoints.
func WithForms(forms *definition.Catalog) Option {
	return func(s *Server) {
		s.forms = forms
	}
}

// WithStore sets where multi-step progress is kept.
func WithStore(store stepper.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithKeyPrefix sets the progress key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Server) {
		s.keyPrefix = prefix
	}
}

// WithMaxAge sets how long saved progress stays resumable.
func WithMaxAge(age time.Duration) Option {
	return func(s *Server) {
		s.maxAge = age
	}
}

// WithVersion sets the version reported by /healthz.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// Server is the HTTP API.
type Server struct {
	logger    *slog.Logger
	orch      *orchestrator.Orchestrator
	forms     *definition.Catalog
	store     stepper.Store
	keyPrefix string
	maxAge    time.Duration
	version   string
	router    chi.Router
}

// New constructs a Server and registers its routes.
func New(options ...Option) *Server {
	s := &Server{
		logger:    slog.Default(),
		keyPrefix: stepper.DefaultKeyPrefix,
		maxAge:    stepper.DefaultMaxAge,
		version:   "dev",
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.orch == nil {
		s.orch = orchestrator.New()
	}
	if s.store == nil {
		s.store = stepper.NewMemoryStore()
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID, Logging(s.logger, "/healthz"), Recovery(s.logger))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/libraries", s.libraries)
		r.Post("/generate", s.generate)
		r.Post("/schema", s.schemaSource)
		r.Post("/jsonschema", s.interchange)
		r.Post("/validate", s.validate)

		r.Get("/forms", s.listForms)
		r.Route("/steps/{formID}", func(r chi.Router) {
			r.Get("/", s.stepState)
			r.Post("/next", s.stepNext)
			r.Post("/prev", s.stepPrev)
			r.Post("/jump/{index}", s.stepJump)
			r.Post("/submit", s.stepSubmit)
			r.Post("/reset", s.stepReset)
		})
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}
