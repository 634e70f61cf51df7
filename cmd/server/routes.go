package main

import (
	"hospital_app_go/config"
	"hospital_app_go/handlers"
	"hospital_app_go/logging"
	"hospital_app_go/middleware"
	"hospital_app_go/models"
	"hospital_app_go/services"
	"hospital_app_go/services/dashboard"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// newServer builds the echo instance with the middleware chain and all routes
func newServer(cfg *config.Config, log *zap.Logger, views *dashboard.Registry, patients *services.PatientService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(logging.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(middleware.CSPNonce())
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSRF(cfg.IsProduction()))

	registerRoutes(e, handlers.NewAuthHandler(views, log), handlers.NewReceptionHandler(views, patients, log))
	return e
}

func registerRoutes(e *echo.Echo, auth *handlers.AuthHandler, reception *handlers.ReceptionHandler) {
	// Public routes
	e.GET("/health", handlers.HealthHandler)
	e.GET("/login", auth.LoginPage)
	e.POST("/login", auth.Login, middleware.LoginRateLimit())

	protected := e.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/logout", auth.Logout)
	}

	// Reception page tree (admin, receptionist and physician)
	receptionRoutes := e.Group("/recepcionista")
	receptionRoutes.Use(middleware.RequireAuth())
	receptionRoutes.Use(middleware.RequireRole(models.ReceptionRoles...))
	{
		receptionRoutes.GET("", reception.Page)
		receptionRoutes.GET("/painel", reception.Panel)
		receptionRoutes.POST("/fila/atualizar", reception.RefreshQueue)
		receptionRoutes.POST("/busca", reception.Search)
	}

	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	api.Use(middleware.RequireRole(models.ReceptionRoles...))
	{
		api.GET("/patients", reception.ListPatients)
	}
}
