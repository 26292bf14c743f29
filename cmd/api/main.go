package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"codeflix-catalog/internal/adapters/eventbroker"
	"codeflix-catalog/internal/adapters/handlers/http/chi"
	videohandler "codeflix-catalog/internal/adapters/handlers/http/chi/v1/video"
	"codeflix-catalog/internal/adapters/repository/postgres"
	"codeflix-catalog/internal/adapters/storage"
	"codeflix-catalog/internal/config"
	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/service/eventbus"
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

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Error("failed to close database", "error", err)
			os.Exit(1)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	mediaStorage, err := storage.NewMediaStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init media storage", "kind", cfg.Storage.Kind, "error", err)
		os.Exit(1)
	}

	//broker
	dispatcher, err := eventbroker.NewDispatcher(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init event dispatcher", "kind", cfg.Broker.Kind, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := dispatcher.Close(); err != nil {
			logger.Error("failed to close event dispatcher", "error", err)
		}
	}()

	bus := eventbus.NewBus(logger)
	bus.Register(domain.EventTypeMediaUploaded, eventbus.NewPublishMediaUploadedHandler(dispatcher, logger))

	unitOfWork := postgres.NewUnitOfWork(db)
	videoService := video.NewVideoService(unitOfWork, mediaStorage, bus, cfg.Upload, logger)

	//http
	videoHandler := videohandler.NewVideoHandlerV1(videoService, cfg.Upload, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := chi.NewRouter(logger, videoHandler, registry, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}
