package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/dcf-valuation/internal/logging"
	"github.com/iwvelando/dcf-valuation/internal/server"
	"github.com/iwvelando/dcf-valuation/internal/ticker"
	"github.com/iwvelando/dcf-valuation/internal/valuation"
	"github.com/iwvelando/dcf-valuation/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	addressOverride := flag.String("address", "", "listen address override, e.g. :8000")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// A missing .env file is not an error
	envErr := godotenv.Load()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.Getenv)
	if *addressOverride != "" {
		cfg.Address = *addressOverride
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("failed to load .env file",
			zap.String("op", "main"),
			zap.Error(envErr),
		)
	}

	client := ticker.NewClient(cfg.Ticker.BaseURL, cfg.Ticker.Timeout, logger)
	tickers := ticker.NewService(client, cfg.Ticker.CacheTTL, logger)
	defer tickers.Close()

	handler := server.NewHandler(logger, server.Options{
		MaxBodySize:    cfg.BodySizeBytes(),
		Version:        version,
		AllowedOrigins: cfg.AllowedOrigins,
		Engine:         valuation.NewEngine(logger),
		Tickers:        tickers,
	})

	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	logger.Info("server listening",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.String("version", version),
		zap.Strings("allowedOrigins", cfg.AllowedOrigins),
	)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down",
			zap.String("op", "main"),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
			tickers.Close()
			_ = logger.Sync()
			os.Exit(1)
		}
	}
}
