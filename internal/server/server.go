// Package server exposes the chunkgraph pipeline over HTTP.
//
// Every POST route takes a JSON project manifest as its body (the same
// shape [io.ReadManifest] accepts) and runs it through a shared
// [pipeline.Runner]:
//
//	GET  /healthz
//	POST /v1/describe           ?assign=false
//	POST /v1/assign
//	POST /v1/render             ?format=dot|svg|png&detailed=true
//	POST /v1/query/covering     ?modules=a,b
//	POST /v1/query/common       ?modules=a,b
//	POST /v1/query/deps         ?module=a
//
// Errors are returned as {"code": ..., "error": ...} with a status derived
// from the error code.
//
// [io.ReadManifest]: github.com/matzehuels/chunkgraph/pkg/io.ReadManifest
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chunkgraph/pkg/pipeline"
)

// DefaultMaxBodyBytes caps the size of a request manifest.
const DefaultMaxBodyBytes = 10 << 20

// Server serves the HTTP API.
type Server struct {
	runner       *pipeline.Runner
	logger       *log.Logger
	maxBodyBytes int64
}

// New creates a server that runs builds with runner. A nil logger uses the
// runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(logger)
	}
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{
		runner:       runner,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))
	router.Use(serverHooks)

	router.Get("/healthz", s.handleHealth)

	router.Route("/v1", func(r chi.Router) {
		r.Post("/describe", s.handleDescribe)
		r.Post("/assign", s.handleAssign)
		r.Post("/render", s.handleRender)

		r.Route("/query", func(r chi.Router) {
			r.Post("/covering", s.handleCovering)
			r.Post("/common", s.handleCommon)
			r.Post("/deps", s.handleDeps)
		})
	})

	return router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
