package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/nfrund/unisocial/internal/apiclient"
	"github.com/nfrund/unisocial/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Run serves the web UI against the configured API until ctx is done. The
// startup probe runs in the background so the fatal page can be served while
// it retries.
func Run(ctx context.Context, cfg config.Provider, opts ...Option) error {
	api := apiclient.New(cfg.GetAPIBaseURL(), apiclient.WithTimeout(cfg.GetAPITimeout()))
	s, err := New(cfg, api, opts...)
	if err != nil {
		return err
	}

	go func() {
		if err := s.Bootstrap(ctx); err != nil {
			s.logger.Debug("Bootstrap stopped", "error", err)
		}
	}()
	return s.Start(ctx)
}

// Start serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		addr := s.Cfg.GetServerAddr()
		s.logger.Info("Web UI listening", "addr", addr)
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops the session watcher and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var watchErr error
	if s.watcher != nil {
		watchErr = s.watcher.Close()
	}
	return errors.Join(watchErr, s.E.Shutdown(ctx))
}
