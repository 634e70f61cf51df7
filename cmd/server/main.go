package main

import (
	"context"
	"errors"
	"hospital_app_go/config"
	"hospital_app_go/db"
	"hospital_app_go/logging"
	"hospital_app_go/models"
	"hospital_app_go/services"
	"hospital_app_go/services/dashboard"
	"hospital_app_go/services/i18n"
	"hospital_app_go/services/jobs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := i18n.Load(logger); err != nil {
		logger.Fatal("failed to load translations", zap.Error(err))
	}
	if err := i18n.SetDefault(cfg.DefaultLocale); err != nil {
		logger.Warn("unsupported default locale, keeping built-in default", zap.String("locale", cfg.DefaultLocale), zap.Error(err))
	}

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}, logger); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.User{}, &models.Session{}, &models.Patient{}); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	patients := services.NewPatientService(db.DB)
	loader := dashboard.NewLoader(patients, dashboard.NewPlaceholderStats(nil), dashboard.TemplateQueue{}, logger)
	views := dashboard.NewRegistry(func(s *services.SessionContext) *dashboard.View {
		return dashboard.NewView(s, loader, dashboard.WithRefreshDelay(cfg.DashboardRefreshDelay))
	}, cfg.DashboardViewTTL, logger)
	defer views.CloseAll()

	// Background jobs
	scheduler := jobs.NewScheduler(nil, logger)
	if err := jobs.RegisterMaintenance(scheduler, db.DB, views); err != nil {
		logger.Fatal("failed to schedule jobs", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	e := newServer(cfg, logger, views, patients)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.ServerPort), zap.String("environment", cfg.Environment))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
