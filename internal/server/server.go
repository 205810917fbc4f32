// Package server exposes the step pipeline as an HTTP API with per-session
// view state.
//
// Every browser session is identified by a cookie and owns one view: the
// last successfully interpreted step plus its explanation. Submissions run
// the full interpret → scene → render pipeline; only a fully successful run
// replaces the session's view, so a client that submits garbage keeps
// looking at its previous network.
//
// # Endpoints
//
//	GET  /healthz             liveness probe
//	GET  /api/examples        canned example listing
//	GET  /api/examples/{name} raw payload of one example
//	POST /api/steps           submit a step payload, returns the rendering
//	POST /api/reset           restore the empty view
//	GET  /api/view            current session view
//
// # Usage
//
//	srv := server.New(runner, views, server.Config{Addr: ":8080"})
//	go srv.Start()
//	...
//	srv.Shutdown(ctx)
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/flowstep/pkg/pipeline"
	"github.com/matzehuels/flowstep/pkg/view"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// readHeaderTimeout bounds how long a client may take to send headers.
const readHeaderTimeout = 10 * time.Second

// Config carries server construction options.
type Config struct {
	// Addr is the listen address. Empty means DefaultAddr.
	Addr string

	// SessionTTL caps how long a session cookie and its view live.
	// Non-positive means view.DefaultTTL.
	SessionTTL time.Duration

	// Render holds the pipeline options applied to every submission
	// (viz type, style, legend, details). Payload sources are ignored.
	Render pipeline.Options

	// Logger receives request and error logs. Nil means log.Default().
	Logger *log.Logger
}

// Server is the HTTP API server.
type Server struct {
	runner     *pipeline.Runner
	views      view.Store
	logger     *log.Logger
	render     pipeline.Options
	sessionTTL time.Duration
	router     chi.Router
	http       *http.Server
}

// New creates a server around the given pipeline runner and view store.
// A nil runner gets a cacheless default; a nil store gets an in-memory one.
func New(runner *pipeline.Runner, views view.Store, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = view.DefaultTTL
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if views == nil {
		views = view.NewMemoryStore(cfg.SessionTTL)
	}

	s := &Server{
		runner:     runner,
		views:      views,
		logger:     cfg.Logger,
		render:     cfg.Render,
		sessionTTL: cfg.SessionTTL,
	}
	s.router = s.routes()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// routes builds the chi router with the middleware stack.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID, s.logRequests, s.recoverPanics)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/examples", s.handleListExamples)
		r.Get("/examples/{name}", s.handleGetExample)
		r.Post("/steps", s.handleSubmitStep)
		r.Post("/reset", s.handleReset)
		r.Get("/view", s.handleView)
	})
	return r
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the view store.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if cerr := s.views.Close(); err == nil {
		err = cerr
	}
	return err
}
