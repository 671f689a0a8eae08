package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/semmlerino/spritesplit/internal/config"
)

// Server exposes sprite sheet detection over HTTP.
type Server struct {
	cfg    config.Config
	logger *log.Logger
	router chi.Router
}

// New creates a Server with the given configuration and logger.
func New(cfg config.Config, logger *log.Logger) *Server {
	s := &Server{cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/api/v1/healthz", s.handleHealth)
	r.Route("/api/v1/detect", func(r chi.Router) {
		r.Post("/grid", s.handleDetectGrid)
		r.Post("/sprites", s.handleDetectSprites)
	})

	s.router = r
	return s
}

// Handler returns the server's HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves requests on the configured address until ctx is
// canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
