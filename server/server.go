// Package server binds the storefront to a port and runs it until shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"go-storefront/config"
	"go-storefront/utils"
)

// Listen binds cfg.Host:cfg.Port, moving to the next port while the current
// one is in use, for at most cfg.PortAttempts ports. Port 0 asks the OS for
// any free port.
func Listen(cfg config.ServerConfig, logger *utils.Logger) (net.Listener, error) {
	port, attempts := cfg.Port, cfg.PortAttempts
	if attempts < 1 {
		attempts = 1
	}
	if port == 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		addr := cfg.Addr(port + i)
		ln, err := net.Listen("tcp", addr)
		if err == nil {
			return ln, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
		logger.Warnw("Port in use, trying next", "port", port+i)
		lastErr = err
	}
	return nil, fmt.Errorf("no free port in %d..%d: %w", port, port+attempts-1, lastErr)
}

// Server wraps http.Server with the storefront's lifecycle
type Server struct {
	http   *http.Server
	logger *utils.Logger
}

func New(handler http.Handler, readTimeout, writeTimeout time.Duration, logger *utils.Logger) *Server {
	return &Server{
		http: &http.Server{
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		logger: logger.WithComponent("server"),
	}
}

// Serve runs on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("Storefront server running", "url", "http://"+ln.Addr().String())
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Infow("Shutting down")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
