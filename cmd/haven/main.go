package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/havenlab/haven/internal/api"
	"github.com/havenlab/haven/internal/auth"
	"github.com/havenlab/haven/internal/cloud"
	"github.com/havenlab/haven/internal/config"
	"github.com/havenlab/haven/internal/events"
	"github.com/havenlab/haven/internal/session"
	"github.com/havenlab/haven/internal/store"
	"github.com/havenlab/haven/internal/syncer"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Local store
	local, err := store.OpenSQLite(cfg.Local.DatabasePath)
	if err != nil {
		logger.Error("failed to open local store", "error", err)
		os.Exit(1)
	}
	defer local.Close()
	logger.Info("local store ready", "path", cfg.Local.DatabasePath)

	// Remote sync store (optional)
	var cloudClient cloud.Client
	if cfg.Sync.DatabaseURL != "" {
		cc, err := cloud.NewPostgresClient(ctx, cfg.Sync.DatabaseURL)
		if err != nil {
			logger.Warn("failed to connect to sync store, running local only", "error", err)
		} else {
			cloudClient = cc
			defer cc.Close()
			logger.Info("connected to sync store")
		}
	}

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to events, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to events")
		}
	}

	// Auth (optional)
	var authClient auth.Client
	if cfg.Auth.URL != "" {
		authClient = auth.NewHTTPClient(cfg.Auth.URL)
	}

	// Debounced sync worker
	var sy *syncer.Syncer
	if cloudClient != nil {
		sy = syncer.New(cloudClient, eventsClient, cfg.SyncDebounce(), logger)
		sy.Start(ctx)
		defer sy.Stop()
		logger.Info("syncer started", "debounce", cfg.SyncDebounce())
	}

	sess := session.New(local, cloudClient, sy, eventsClient, logger)

	// API server
	router := api.NewRouter(sess, authClient, cfg.Server.RequestsPerMinute, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsRouter := api.NewMetricsRouter()
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsRouter,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)
	// syncer flushes pending work in its deferred Stop

	logger.Info("shutdown complete")
}
