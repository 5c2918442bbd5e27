//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pgEdge/pgedge-secdata/internal/config"
	"github.com/pgEdge/pgedge-secdata/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the gin engine serving svc.
func NewRouter(svc Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogging())
	NewHandler(svc).Register(router)
	return router
}

// Server is the HTTP server of the serve command.
type Server struct {
	srv *http.Server
}

// NewServer creates a Server listening on cfg.Listen.
func NewServer(cfg config.ServerConfig, svc Service) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	return &Server{
		srv: &http.Server{
			Addr:              cfg.Listen,
			Handler:           NewRouter(svc),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts the
// server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("listen", s.srv.Addr).Msg("HTTP server starting")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown requested")
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logging.Info().Msg("HTTP server stopped")
	return nil
}
