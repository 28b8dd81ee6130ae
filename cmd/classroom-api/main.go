package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-classroom/api/swagger"
	"github.com/noah-isme/sma-classroom/internal/handler"
	"github.com/noah-isme/sma-classroom/internal/repository"
	"github.com/noah-isme/sma-classroom/internal/roster"
	"github.com/noah-isme/sma-classroom/internal/service"
	"github.com/noah-isme/sma-classroom/pkg/config"
	"github.com/noah-isme/sma-classroom/pkg/logger"
)

// @title Classroom API
// @version 0.1.0
// @description Gradebook, seating chart and grade analytics for a fixed class catalogue
// @BasePath /api/v1
// @schemes http

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := repository.OpenStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			logr.Warn("failed to close storage", zap.Error(err))
		}
	}()

	metrics := service.NewMetricsService()
	state := repository.NewStateRepository(repository.Instrument(store, metrics), logr)
	students := roster.Generate(cfg.Roster.Seed, cfg.Roster.ClassSize)

	classroom := service.NewClassroomService(ctx, students, state, service.ClassroomConfig{
		DemoEnabled: cfg.Demo.Enabled,
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}, metrics, nil, logr)
	exports := service.NewExportService(classroom, service.ExportConfig{Filename: cfg.Export.Filename}, nil, logr, nil, nil)

	router := handler.NewRouter(handler.RouterConfig{
		APIPrefix:      cfg.APIPrefix,
		StorageBackend: cfg.Storage.Backend,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
	}, handler.Services{
		Classroom: classroom,
		Export:    exports,
		Metrics:   metrics,
		Storage:   store,
	}, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "storage", cfg.Storage.Backend, "demo_tools", cfg.Demo.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logr.Sugar().Errorw("server failed", "error", err)
	case <-ctx.Done():
		logr.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("could not stop server gracefully", zap.Error(err))
		_ = srv.Close()
	}
}
