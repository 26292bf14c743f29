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

	"codeflix-catalog/internal/adapters/eventbroker"
	"codeflix-catalog/internal/adapters/metrics"
	"codeflix-catalog/internal/adapters/repository/postgres"
	"codeflix-catalog/internal/adapters/storage"
	"codeflix-catalog/internal/config"
	"codeflix-catalog/internal/core/service/eventbus"
	"codeflix-catalog/internal/core/service/mediaevent"
	"codeflix-catalog/internal/core/service/video"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	// Initialize database
	db, err := postgres.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("db connection established")

	mediaStorage, err := storage.NewMediaStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init media storage", "kind", cfg.Storage.Kind, "error", err)
		os.Exit(1)
	}

	// Processing never raises integration events, so the bus has no handlers
	unitOfWork := postgres.NewUnitOfWork(db)
	videoService := video.NewVideoService(unitOfWork, mediaStorage, eventbus.NewBus(logger), cfg.Upload, logger)
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	messageService := metrics.InstrumentMessageService(mediaevent.NewMediaEventService(videoService, logger), registry)

	metricsServer := &http.Server{Addr: cfg.Metrics.Addr, Handler: metrics.Handler(registry)}
	go func() {
		logger.Info("starting metrics server", "addr", cfg.Metrics.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	consumer, err := eventbroker.NewConsumer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create consumer", "kind", cfg.Broker.Kind, "error", err)
		os.Exit(1)
	}
	logger.Info("consumer initialized", "kind", cfg.Broker.Kind)

	if err := consumer.Subscribe(ctx, messageService); err != nil {
		logger.Error("failed to subscribe", "error", err)
		consumer.Close()
		os.Exit(1)
	}
	logger.Info("subscription active")

	// Wait for termination signal
	<-ctx.Done()
	logger.Info("gracefully shutting down video processing service")

	// Close waits for the in-flight message
	if err := consumer.Close(); err != nil {
		logger.Error("failed to close consumer during shutdown", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown metrics server", "error", err)
	}

	logger.Info("video processing service shutdown complete")
}
