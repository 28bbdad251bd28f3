// Package server provides the HTTP server implementation
package server

// @title           Branch Loan API
// @version         1.0
// @description     Loan intake service for branch offices.
//
// @description.markdown
// All /api endpoints are subject to rate limiting when enabled:
// * Default rate: 1000 requests per 60 seconds
// * Burst allowance: 50 requests
// * Rate limits are applied per client IP address
//
// When rate limit is exceeded:
// * Status code 429 (Too Many Requests) is returned
// * Headers:
//   - X-RateLimit-Limit: Maximum requests allowed per window
//   - X-RateLimit-Remaining: Requests left before throttling
//   - Retry-After: Seconds to wait before retrying
//
// Every response carries an X-Request-ID header matching the request's log lines.
//
// @host            localhost:8080
// @BasePath        /
//
// @response 429 {object} models.ErrorResponse "Rate limit exceeded"

import (
	"branchloan/internal/config"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/rs/zerolog"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	srv    *http.Server
	logger zerolog.Logger
}

// New creates a new server instance serving handler on the configured port
func New(cfg *config.Config, handler http.Handler, logger zerolog.Logger) *Server {
	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.API.Port),
			Handler: handler,
		},
		logger: logger,
	}
}

// Run listens on the configured port and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests for at most the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("Starting server")

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Dur("timeout", s.cfg.API.ShutdownTimeout).Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.API.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// Serve has returned ErrServerClosed by now
	<-errCh
	s.logger.Info().Msg("Server exited")
	return nil
}
