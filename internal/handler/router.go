package handler

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"notes-service/internal/middleware"
	"notes-service/pkg/jwtutil"
	"notes-service/pkg/logger"
	"notes-service/prometheus"
)

// NewRouter builds the Echo instance with all middleware and routes wired.
func NewRouter(jwtUtil *jwtutil.JWTUtil, auth *AuthHandler, notes *NoteHandler, tenants *TenantHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = HTTPErrorHandler

	// Global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestID)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes
	e.GET("/health", HealthCheck)
	e.GET("/metrics", MetricsHandler)

	// Authentication routes
	authGroup := e.Group("/auth")
	authGroup.POST("/register", auth.Register)
	authGroup.POST("/login", auth.Login)
	authGroup.GET("/me", auth.Me, middleware.Auth(jwtUtil))

	// Note routes - all require authentication
	noteGroup := e.Group("/notes")
	noteGroup.Use(middleware.Auth(jwtUtil))
	noteGroup.POST("", notes.Create)
	noteGroup.GET("", notes.List)
	noteGroup.GET("/:id", notes.Get)
	noteGroup.PUT("/:id", notes.Update)
	noteGroup.DELETE("/:id", notes.Delete)

	// Tenant routes - lookup for any member, upgrade for admins only
	tenantGroup := e.Group("/tenants")
	tenantGroup.Use(middleware.Auth(jwtUtil))
	tenantGroup.GET("/:id", tenants.Get)
	tenantGroup.POST("/:id/upgrade", tenants.Upgrade, middleware.RequireAdmin)

	return e
}
