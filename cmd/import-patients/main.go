package main

import (
	"context"
	"flag"
	"fmt"
	"hospital_app_go/config"
	"hospital_app_go/db"
	"hospital_app_go/logging"
	"hospital_app_go/models"
	"hospital_app_go/services"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
)

const importTimeout = 5 * time.Minute

func main() {
	file := flag.String("file", "", "path to the .xlsx patient spreadsheet")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: import-patients -file patients.xlsx")
		os.Exit(2)
	}

	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

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

	if err := db.AutoMigrate(&models.Patient{}); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal("failed to open spreadsheet", zap.String("file", *file), zap.Error(err))
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	result, err := services.NewPatientService(db.DB).ImportPatients(ctx, f)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	logger.Info("import finished",
		zap.Int("processed", result.TotalProcessed),
		zap.Int("imported", result.SuccessCount),
		zap.Int("skipped", result.SkippedCount),
	)
	for _, msg := range result.Errors {
		logger.Warn("row rejected", zap.String("reason", msg))
	}
}
