// Package server serves rendered plants over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /version
//	GET    /v1/stages
//	GET    /v1/plant.{format}?genome=2,3,2,1&stage=4&seed=x&pot=bowl&filters=false
//	GET    /v1/pot.svg?style=bowl&width=120&height=60&seed=x
//	GET    /v1/sheets
//	GET    /v1/sheets/{name}.{format}
//	POST   /v1/specimens
//	GET    /v1/specimens
//	GET    /v1/specimens/{id}
//	GET    /v1/specimens/{id}/plant.{format}
//	DELETE /v1/specimens/{id}
//
// Errors are JSON objects {"code": ..., "message": ...}.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sprout/pkg/pipeline"
	"github.com/matzehuels/sprout/pkg/specimen"
)

// Options configures a Server.
type Options struct {
	Runner *pipeline.Runner
	Store  specimen.Store
	Logger *log.Logger

	// Defaults applies configured render defaults to every request.
	Defaults func(pipeline.Options) pipeline.Options
}

// Server is the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    specimen.Store
	logger   *log.Logger
	defaults func(pipeline.Options) pipeline.Options
	router   chi.Router
}

// New builds a server and its routes. A nil runner or store gets an
// uncached runner or an in-memory store.
func New(opts Options) *Server {
	s := &Server{
		runner:   opts.Runner,
		store:    opts.Store,
		logger:   opts.Logger,
		defaults: opts.Defaults,
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.store == nil {
		s.store = specimen.NewMemoryStore()
	}
	if s.defaults == nil {
		s.defaults = func(o pipeline.Options) pipeline.Options { return o }
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequest)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/stages", s.handleStages)
		r.Get("/plant.{format}", s.handlePlant)
		r.Get("/pot.svg", s.handlePot)
		r.Get("/sheets", s.handleSheetList)
		r.Get("/sheets/{name}.{format}", s.handleSheet)

		r.Route("/specimens", func(r chi.Router) {
			r.Post("/", s.handleCreateSpecimen)
			r.Get("/", s.handleListSpecimens)
			r.Get("/{id}", s.handleGetSpecimen)
			r.Get("/{id}/plant.{format}", s.handleSpecimenPlant)
			r.Delete("/{id}", s.handleDeleteSpecimen)
		})
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Timeouts bound request handling and shutdown.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully, waiting at most t.Shutdown for in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string, t Timeouts) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, t)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, t Timeouts) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  t.Read,
		WriteTimeout: t.Write,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	grace := t.Shutdown
	if grace <= 0 {
		grace = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	s.logger.Info("shutting down", "grace", grace)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
