package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// Message is the error message returned when rate limit is exceeded
	Message string
}

// RateLimit builds echo's token bucket limiter keyed by client IP.
// Requests tokens refill evenly over Window.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Message == "" {
		cfg.Message = "Too many requests. Please try again later."
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		Burst:     cfg.Requests,
		ExpiresIn: 3 * cfg.Window,
	})

	deny := func(c echo.Context, identifier string, err error) error {
		if IsHTMX(c) {
			return c.HTML(http.StatusTooManyRequests, `<div class="bg-red-100 text-red-800 px-4 py-3 rounded">`+cfg.Message+`</div>`)
		}
		return echo.NewHTTPError(http.StatusTooManyRequests, cfg.Message)
	}

	// identifier extraction never fails, but the limiter still needs a handler
	onError := func(c echo.Context, err error) error {
		return deny(c, "", err)
	}

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler:  deny,
		ErrorHandler: onError,
	})
}

// LoginRateLimit limits login attempts to 5 per minute per IP
func LoginRateLimit() echo.MiddlewareFunc {
	return RateLimit(RateLimitConfig{
		Requests: 5,
		Window:   time.Minute,
		Message:  "Too many login attempts. Please wait a minute before trying again.",
	})
}
