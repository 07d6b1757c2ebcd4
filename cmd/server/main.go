package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mbodji/autodiag/internal/config"
	"github.com/mbodji/autodiag/internal/repository/mongodb"
	"github.com/mbodji/autodiag/internal/repository/sheets"
	"github.com/mbodji/autodiag/internal/scheduler"
	"github.com/mbodji/autodiag/internal/server/handlers"
	"github.com/mbodji/autodiag/internal/server/router"
	reportingsvc "github.com/mbodji/autodiag/internal/service/reporting"
	"github.com/mbodji/autodiag/pkg/clients/telematics"
	"github.com/mbodji/autodiag/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var exporter sheets.Exporter
	if cfg.Sheets.Enabled() {
		exporter, err = sheets.NewMaintenanceLogRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheets export enabled")
	} else {
		baseLogger.Info("sheets export disabled")
	}

	reportingSvc := reportingsvc.NewService(mongoRepo, exporter, cfg.Maintenance.OilChangeIntervalMiles, baseLogger.Named("svc.reporting"))

	diagHandler := handlers.NewDiagnosticsHandler(baseLogger.Named("handlers.diagnostics"))
	vehicleHandler := handlers.NewVehicleHandler(mongoRepo, reportingSvc, baseLogger.Named("handlers.vehicles"))
	engine := router.New(diagHandler, vehicleHandler, baseLogger.Named("router"))

	var telematicsClient telematics.Client
	if cfg.Telematics.Enabled() {
		telematicsClient = telematics.NewClient(cfg.Telematics)
		baseLogger.Info("telematics client enabled", zap.Int("vehicles", len(cfg.Telematics.VehicleIDs)))
	} else {
		baseLogger.Warn("telematics not configured, odometer sync disabled")
	}

	sched := scheduler.NewScheduler(*cfg, mongoRepo, reportingSvc, telematicsClient, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

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
