// Package server exposes the grid pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz              liveness check
//	POST /v1/grid              resolve a grid document to track sizes and cells
//	POST /v1/render/{format}   render a grid document as svg, png, pdf or json
//
// Request bodies are JSON grid documents (see package io). Errors are
// returned as {"error": {"code": ..., "message": ...}} with a status derived
// from the error code.
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stackgrid/pkg/pipeline"
)

// maxBodyBytes bounds the size of a request document.
const maxBodyBytes = 1 << 20

// DefaultRequestTimeout bounds a single pipeline run.
const DefaultRequestTimeout = 30 * time.Second

// Server serves the grid API. It is safe for concurrent use.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
	router  chi.Router
}

// New creates a server backed by runner. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		timeout: DefaultRequestTimeout,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(middleware.Timeout(s.timeout))
		r.Post("/grid", s.handleGrid)
		r.Post("/render/{format}", s.handleRender)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
