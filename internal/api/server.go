// Package api exposes the newsletter service over HTTP: the public
// subscribe and confirm routes, the credential-gated delivery route, and
// the operational surface (health check, metrics, login form).
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ignite/newsletter/internal/config"
	"github.com/ignite/newsletter/internal/pkg/logger"
)

// Server wraps the HTTP server with sane timeouts and graceful shutdown.
type Server struct {
	cfg    config.ServerConfig
	server *http.Server
}

// NewServer creates the API server around an assembled router.
func NewServer(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		cfg: cfg,
		server: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Start blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	logger.Info("http server listening", "addr", s.cfg.Addr())
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
