package db

import (
	"fmt"
	"net/url"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Options selects the database backend
type Options struct {
	// Path of the local sqlite file, used when TursoURL is empty
	Path        string
	TursoURL    string
	TursoToken  string
	Environment string
}

// Initialize opens the database connection. Local files use WAL mode for concurrency,
// a Turso URL is opened through the libsql driver with the same sqlite dialect.
func Initialize(opts Options, log *zap.Logger) error {
	logLevel := logger.Info
	if opts.Environment == "production" {
		logLevel = logger.Warn
	}

	dialector, err := dialectorFor(opts)
	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.TursoURL != "" {
		log.Info("database connection established", zap.String("backend", "turso"))
	} else {
		log.Info("database connection established", zap.String("backend", "sqlite"), zap.String("path", opts.Path))
	}
	return nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	if opts.TursoURL == "" {
		return sqlite.Open(opts.Path + "?_journal_mode=WAL"), nil
	}

	u, err := url.Parse(opts.TursoURL)
	if err != nil {
		return nil, fmt.Errorf("invalid turso url: %w", err)
	}
	if opts.TursoToken != "" {
		q := u.Query()
		q.Set("authToken", opts.TursoToken)
		u.RawQuery = q.Encode()
	}
	return sqlite.New(sqlite.Config{
		DriverName: "libsql",
		DSN:        u.String(),
	}), nil
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Ping checks the underlying connection
func Ping() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Ping()
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
