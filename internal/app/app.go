package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"rubconv/internal/adapters/cbr"
	"rubconv/internal/api"
	"rubconv/internal/config"
	"rubconv/internal/conversion"
	"rubconv/internal/conversion/handler"
	httpserver "rubconv/internal/platform/http"

	"github.com/sirupsen/logrus"
)

// Run wires the application components and serves HTTP until SIGINT/SIGTERM.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}

	logger := NewLogger(appCfg.Logging)
	logger.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Zero timeout keeps the http.Client default
	baseHTTPClient := &http.Client{Timeout: time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second}

	rateClient := cbr.NewClient(baseHTTPClient, appCfg.RateAPI.URL)
	converter := conversion.NewService(rateClient, logger)
	converterHandler := handler.NewConverterHandler(converter, logger, appCfg.HTTPServer.StrictStatus)
	router := api.NewRouter(converterHandler)

	logger.WithField("rate_api", appCfg.RateAPI.URL).Info("Starting http server")
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router, logger); serverErr != nil {
		logger.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	logger.Info("HTTP server stopped")
	return nil
}

// NewLogger builds the process logger; unknown levels fall back to info.
func NewLogger(cfg config.Logging) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(cfg.Level); parseErr != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(parsedLvl)
	}
	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
