// Package server exposes layout sessions over HTTP.
//
// A session is a layout manager bound to a reference host (viewport, item
// count and handle pool). Its restorable state lives in a session.Store, so
// any instance sharing the store can serve any session: a request loads the
// snapshot, reuses the in-process manager when it is still current, or
// rebuilds it and restores the anchor with ScrollToAnchor.
//
// Routes:
//
//	POST   /v1/sessions                 create a session
//	GET    /v1/sessions/{id}            current view
//	DELETE /v1/sessions/{id}            delete a session
//	POST   /v1/sessions/{id}/scroll     {"dy": n}
//	POST   /v1/sessions/{id}/insert     {"start": i, "count": n}
//	POST   /v1/sessions/{id}/remove     {"start": i, "count": n}
//	POST   /v1/sessions/{id}/reset
//	PUT    /v1/sessions/{id}/viewport   {"width": w, "height": h}
//	GET    /v1/sessions/{id}/svg        view as SVG
package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tilegrid/pkg/buildinfo"
	"github.com/matzehuels/tilegrid/pkg/host"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/session"
)

// Config configures a Server.
type Config struct {
	Store  session.Store
	TTL    time.Duration
	Logger *log.Logger

	// Aspect is used for sessions created without one.
	Aspect float64
}

// Server serves layout sessions.
type Server struct {
	store  session.Store
	ttl    time.Duration
	logger *log.Logger
	aspect float64
	router chi.Router

	mu   sync.Mutex
	live map[string]*liveSession
}

// liveSession is the in-process state of one session.
type liveSession struct {
	mu       sync.Mutex
	snap     *session.Snapshot
	viewport *host.Viewport
	pool     *host.Pool
	manager  *layout.Manager
}

// New creates a server. A nil store selects an in-memory one.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = session.NewMemoryStore()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = session.DefaultTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Aspect == 0 {
		cfg.Aspect = layout.DefaultAspect
	}

	s := &Server{
		store:  cfg.Store,
		ttl:    cfg.TTL,
		logger: cfg.Logger,
		aspect: cfg.Aspect,
		live:   make(map[string]*liveSession),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, struct {
			Status string `json:"status"`
			buildinfo.Info
		}{"ok", buildinfo.Get()})
	})

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/scroll", s.handleScroll)
			r.Post("/insert", s.handleInsert)
			r.Post("/remove", s.handleRemove)
			r.Post("/reset", s.handleReset)
			r.Put("/viewport", s.handleViewport)
			r.Get("/svg", s.handleSVG)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully
// within grace.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
