package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"cardslip/internal/config"
	"cardslip/internal/repository/sheets"
	"cardslip/internal/scheduler"
	"cardslip/internal/server/handlers"
	"cardslip/internal/server/router"
	catalogsvc "cardslip/internal/service/catalog"
	orderssvc "cardslip/internal/service/orders"
	"cardslip/pkg/clients/images"
	"cardslip/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
	}

	catalogService := catalogsvc.NewService(sheetsRepo, cfg.Catalog.Range, baseLogger.Named("svc.catalog"))
	sessionStore := orderssvc.NewStore(cfg.Session.TTL, baseLogger.Named("svc.orders"))
	imageClient := images.NewClient()

	searchHandler := handlers.NewSearchHandler(catalogService, baseLogger.Named("handlers.search"))
	orderHandler := handlers.NewOrderHandler(baseLogger.Named("handlers.order"))
	imageHandler := handlers.NewImageHandler(imageClient, baseLogger.Named("handlers.image"))
	engine := router.New(searchHandler, orderHandler, imageHandler, sessionStore, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, catalogService, sessionStore, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	// Warm the catalog snapshot so the first search does not pay for the
	// sheet read. A failure here is not fatal; search retries on demand.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := catalogService.Refresh(warmCtx); err != nil {
		baseLogger.Warn("initial catalog load failed", zap.Error(err))
	}
	warmCancel()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
