package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spencer-p/tidetable/pkg/config"
	"github.com/spencer-p/tidetable/pkg/dhn"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stderr)

	profiles, err := cfg.Profiles()
	if err != nil {
		logger.Error("failed to load profiles", "error", err)
		os.Exit(1)
	}
	for _, p := range profiles {
		if p.DocumentURL == "" && p.DocumentPath == "" {
			logger.Warn("station has no document configured", "station", p.Slug)
		}
	}

	fetcher := dhn.NewFetcher(cfg.FetchTimeout, cfg.CacheTTL, logger)

	srv := &http.Server{
		Handler:      newRouter(cfg, profiles, fetcher, logger),
		Addr:         cfg.Addr(),
		WriteTimeout: cfg.FetchTimeout + 15*time.Second,
		ReadTimeout:  15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening and serving",
			"addr", srv.Addr,
			"prefix", cfg.Prefix,
			"stations", len(profiles),
			"build", cfg.BuildID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}
