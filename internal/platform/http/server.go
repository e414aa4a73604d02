package http

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"rubconv/internal/config"

	"github.com/sirupsen/logrus"
)

// Start runs HTTP server and shuts it down gracefully on ctx cancellation.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler, logger *logrus.Logger) error {
	listener, listenErr := net.Listen("tcp", cfg.Addr())
	if listenErr != nil {
		return listenErr
	}
	return Serve(ctx, listener, cfg, handler, logger)
}

// Serve is Start on an already bound listener.
func Serve(ctx context.Context, listener net.Listener, cfg config.HTTPServer, handler http.Handler, logger *logrus.Logger) error {
	logger.Infof("✅ HTTP server listening on %s", listener.Addr())

	errorLog := logger.WriterLevel(logrus.WarnLevel)
	defer errorLog.Close()

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.New(errorLog, "", 0),
	}
	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	shutdownTimeout := time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			return shutdownErr
		}
		return nil
	case serveErr := <-errCh:
		return serveErr
	}
}
