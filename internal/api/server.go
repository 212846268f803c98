// Package api serves boards over HTTP.
//
// All bodies are JSON. Errors are returned as {"code": ..., "message": ...}
// with the status derived from the error code (see statusFor).
//
//	GET    /healthz
//	GET    /boards
//	GET    /boards/{name}
//	PUT    /boards/{name}                 create or replace {grid, widgets}
//	DELETE /boards/{name}
//	POST   /boards/{name}/widgets         {id?, width, height}
//	DELETE /boards/{name}/widgets/{id}
//	POST   /boards/{name}/move            {id, x, y}
//	POST   /boards/{name}/compact
//	POST   /boards/{name}/preview         {id, dx, dy}, never mutates
//	POST   /boards/{name}/undo
//	POST   /boards/{name}/redo
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/store"
)

// Options configures a Server.
type Options struct {
	Logger       *log.Logger
	HistoryDepth int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server exposes the boards of one store. Opened boards are kept in memory
// so undo history survives between requests; the store is the source of
// truth when a board is first touched.
type Server struct {
	store  store.Store
	logger *log.Logger
	opts   Options

	mu     sync.Mutex
	boards map[string]*board.Board
}

// New creates a server on s.
func New(s store.Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{
		store:  s,
		logger: opts.Logger,
		opts:   opts,
		boards: make(map[string]*board.Board),
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/boards", func(r chi.Router) {
		r.Get("/", s.handleListBoards)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGetBoard)
			r.Put("/", s.handlePutBoard)
			r.Delete("/", s.handleDeleteBoard)
			r.Post("/widgets", s.handleAddWidget)
			r.Delete("/widgets/{id}", s.handleRemoveWidget)
			r.Post("/move", s.handleMove)
			r.Post("/compact", s.handleCompact)
			r.Post("/preview", s.handlePreview)
			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// open returns the cached board or loads it from the store.
func (s *Server) open(ctx context.Context, name string) (*board.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.boards[name]; ok {
		return b, nil
	}
	b, err := board.Open(ctx, s.store, name, gridUnset, board.Options{
		Logger:       s.logger,
		HistoryDepth: s.opts.HistoryDepth,
	})
	if err != nil {
		return nil, err
	}
	s.boards[name] = b
	return b, nil
}

// retire closes the cached board, if any, runs write and drops the board
// from the cache. Holding the cache lock throughout keeps other requests
// from loading or mutating the board until write has finished.
func (s *Server) retire(name string, write func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.boards[name]; ok {
		b.Close()
		delete(s.boards, name)
	}
	return write()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
