package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"billchill/internal/api"
	"billchill/internal/api/handlers"
	"billchill/internal/repository"
	"billchill/internal/service"
	"billchill/pkg/config"
	"billchill/pkg/logger"
	"billchill/pkg/postgres"

	"go.uber.org/zap"
)

// @title BillChill API
// @version 1.0
// @description Medical bill dispute service: stage bill uploads, submit them for analysis, and download the generated dispute letter

// @contact.name API Support
// @contact.email support@billchill.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting BillChill service")

	// Provider registry is reference data; the service stays usable for
	// analysis when the database is down, just without provider validation.
	ctx := context.Background()
	var providerRepo *repository.ProviderRepository
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Warn("Provider registry unavailable, continuing without it", zap.Error(err))
	} else {
		defer db.Close()
		providerRepo = repository.NewProviderRepository(db, appLogger)
	}

	// Initialize services
	submissionService := service.NewSubmissionService(&cfg.Analyzer, appLogger)
	disputeService := service.NewDisputeService(submissionService, providerRepo, appLogger)
	hospitalService := service.NewHospitalService(&cfg.Analyzer, appLogger)

	// Initialize handlers
	disputeHandler := handlers.NewDisputeHandler(disputeService, appLogger)
	hospitalHandler := handlers.NewHospitalHandler(hospitalService, appLogger)

	// Setup router
	app := api.SetupRouter(disputeHandler, hospitalHandler)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
