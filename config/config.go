package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultRefreshDelay is how long the reception queue stays in its loading state after a refresh
	DefaultRefreshDelay = time.Second
	// DefaultViewTTL is how long an idle reception dashboard view is kept in memory
	DefaultViewTTL = 30 * time.Minute
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	LogLevel    string
	// Remote database (Turso). When TursoDatabaseURL is empty the local sqlite file at DBPath is used.
	TursoDatabaseURL string
	TursoAuthToken   string
	// Locale & HTTP
	DefaultLocale  string
	AllowedOrigins []string
	AppURL         string
	// Reception dashboard
	DashboardRefreshDelay time.Duration
	DashboardViewTTL      time.Duration
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		DBPath:                getEnv("DB_PATH", "db/hospital.db"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		TursoDatabaseURL:      getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:        getEnv("TURSO_AUTH_TOKEN", ""),
		DefaultLocale:         getEnv("DEFAULT_LOCALE", "pt"),
		AllowedOrigins:        splitList(getEnv("ALLOWED_ORIGINS", "*")),
		AppURL:                getEnv("APP_URL", "http://localhost:8080"),
		DashboardRefreshDelay: getEnvDuration("DASHBOARD_REFRESH_DELAY", DefaultRefreshDelay),
		DashboardViewTTL:      getEnvDuration("DASHBOARD_VIEW_TTL", DefaultViewTTL),
	}
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate rejects settings that are only acceptable during development.
// Production needs explicit CORS origins, and a Turso URL needs its token.
func (c *Config) Validate() error {
	var errs []error
	if c.IsProduction() {
		for _, origin := range c.AllowedOrigins {
			if origin == "*" {
				errs = append(errs, errors.New("ALLOWED_ORIGINS must list explicit origins in production"))
				break
			}
		}
	}
	if c.TursoDatabaseURL != "" && c.TursoAuthToken == "" && !strings.HasPrefix(c.TursoDatabaseURL, "http://") {
		errs = append(errs, fmt.Errorf("TURSO_AUTH_TOKEN is required for %s", c.TursoDatabaseURL))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma separated value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvDuration parses values like "1s" or "500ms"; invalid or non-positive values keep the default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[WARNING] Invalid duration for %s (%q), using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
