package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/m3tools/m3cd/src/internal/log"
)

// Server wraps an http.Server serving the API.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a server for handler listening on bindAddr.
func NewServer(bindAddr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         bindAddr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until the server is stopped. It returns nil after Stop.
func (s *Server) Start() error {
	log.Infof("[API] Listening on http://%s/api/v1", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the server, closing it if ctx expires first.
func (s *Server) Stop(ctx context.Context) error {
	log.Infof("[API] Shutting down server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		if closeErr := s.httpServer.Close(); closeErr != nil {
			return fmt.Errorf("failed to close server: %w", closeErr)
		}
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
