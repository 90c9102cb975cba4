// Package web serves the arena leaderboard over HTTP.
//
// The API is read-only: runs are written by local and SSH sessions and
// exposed here as JSON, plus a websocket feed that pushes each new run
// as it is saved.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"

	"github.com/vovakirdan/snake-arena/internal/storage"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// PollInterval is how often the live feed checks for new runs.
	PollInterval time.Duration

	// MaxLimit caps the limit query parameter.
	MaxLimit int
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		PollInterval: time.Second,
		MaxLimit:     100,
	}
}

// Server is the leaderboard HTTP server.
type Server struct {
	config Config
	store  *storage.Store
	logger *log.Logger
	policy *bluemonday.Policy
	router chi.Router
}

// NewServer builds the router over an open store.
// A nil logger writes to stderr.
func NewServer(store *storage.Store, cfg Config, logger *log.Logger) (*Server, error) {
	if store == nil {
		return nil, errors.New("web: nil store")
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arena-web",
		})
	}
	def := DefaultConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = def.MaxLimit
	}

	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		policy: bluemonday.StrictPolicy(),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/games", s.handleGames)
		r.Get("/scores", s.handleRecent)
		r.Get("/scores/{game}", s.handleTop)
		r.Get("/stats/{game}", s.handleStats)
		r.Get("/runs/{id}", s.handleRun)
		r.Get("/live", s.handleLive)
	})
	return r
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger logs each request once it has been served.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// ListenAndServe serves until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("web: shutdown: %w", err)
		}
		return nil
	case err, ok := <-errc:
		if !ok {
			return nil
		}
		return fmt.Errorf("web: serve: %w", err)
	}
}
