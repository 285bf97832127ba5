// Package server exposes engine sessions over HTTP for inspect mode.
//
// Each session is created from a document (request body), a stored snapshot
// or the watched file, and is addressed by a random id. Mutating endpoints
// apply one session operation and answer with the new frame.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/modelgraph/pkg/layout"
	"github.com/matzehuels/modelgraph/pkg/snapshot"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second

	// maxBodyBytes bounds uploaded documents.
	maxBodyBytes = 32 << 20
)

// Config holds configuration for the server.
type Config struct {
	Addr   string
	Layout layout.Options
	Logger *log.Logger

	// Snapshots serves ?snapshot=<env> session creation. Optional.
	Snapshots snapshot.Store

	// WatchFile seeds sessions created without a body and, when Watch is
	// set, reseeds them whenever the file changes.
	WatchFile string
	Watch     bool
}

// Server is the inspect-mode HTTP server.
type Server struct {
	cfg      Config
	logger   *log.Logger
	sessions *registry
}

// New creates a server. It does not start listening.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		sessions: newRegistry(),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.logRequests,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/views", s.handleViews)
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Get("/dot", s.handleDOT)
				r.Put("/view/{view}", s.handleSwitchView)
				r.Post("/expand-all", s.sessionOp(expandAll))
				r.Post("/collapse-all", s.sessionOp(collapseAll))
				r.Post("/reset", s.sessionOp(reset))
				r.Post("/rich-text", s.handleRichText)
				r.Route("/nodes/{node}", func(r chi.Router) {
					r.Get("/rows", s.handleRows)
					r.Post("/toggle", s.nodeOp(toggleNode))
					r.Post("/isolate", s.nodeOp(isolateSingle))
					r.Post("/related", s.nodeOp(isolateRelated))
				})
			})
		})
	})
	return r
}

// Serve listens on the configured address and blocks until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if s.cfg.Watch && s.cfg.WatchFile != "" {
		eg.Go(func() error {
			return s.watchFile(egctx)
		})
	}

	eg.Go(func() error {
		s.logger.Info("serving inspect API", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down inspect API")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// logRequests logs every request through the server's logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
