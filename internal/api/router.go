package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffdesk/employee-system/internal/api/handler"
	"github.com/staffdesk/employee-system/internal/api/middleware"
	"github.com/staffdesk/employee-system/internal/core/domain"
	"github.com/staffdesk/employee-system/internal/core/ports"
)

// Deps carries everything the router needs; repositories and services are
// constructed by the caller and injected here.
type Deps struct {
	AuthService     ports.AuthService
	EmployeeService ports.EmployeeService
	JWTSecret       string
	CORSOrigin      string
	Production      bool
	Logger          zerolog.Logger

	// Optional, readiness-probe only. Nil when not configured.
	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, deps.Production)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{deps.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// --- Handlers and guards ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	employeeHandler := handler.NewEmployeeHandler(deps.EmployeeService)

	authRequired := middleware.Auth(deps.JWTSecret)
	authOptional := middleware.OptionalAuth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.GET("/me", authHandler.Me, authRequired)
	// Logout works with or without a (possibly already expired) token.
	auth.POST("/logout", authHandler.Logout, authOptional)

	// --- Employee routes ---
	employees := e.Group("/api/employees", authRequired)
	employees.GET("", employeeHandler.List, anyRole)
	employees.GET("/stats", employeeHandler.Stats, adminOnly)
	employees.GET("/check/username", employeeHandler.CheckUsername, adminOnly)
	employees.GET("/check/email", employeeHandler.CheckEmail, adminOnly)
	employees.GET("/:id", employeeHandler.Get, anyRole)
	employees.POST("", employeeHandler.Create, adminOnly)
	employees.PUT("/:id", employeeHandler.Update, adminOnly)
	employees.DELETE("/:id", employeeHandler.Delete, adminOnly)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
