package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/schoolrecords/records-portal/docs"
	"github.com/schoolrecords/records-portal/internal/api/handler"
	"github.com/schoolrecords/records-portal/internal/api/middleware"
	"github.com/schoolrecords/records-portal/internal/core/domain"
	"github.com/schoolrecords/records-portal/internal/core/gate"
	"github.com/schoolrecords/records-portal/internal/core/ports"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Sessions ports.SessionManager
	Resets   ports.PasswordResetService
	Users    ports.UserService
	Gate     *gate.Gate
	Cookie   handler.CookieConfig
	Health   map[string]handler.Pinger
	Log      zerolog.Logger

	// Registry receives the HTTP metrics. /metrics gathers from it and from
	// the default registry, where the domain counters live. Nil means the
	// default registry only.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = handler.NewTemplateRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer = d.Registry
		gatherer = prometheus.Gatherers{d.Registry, prometheus.DefaultGatherer}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Secure())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "records",
		Subsystem:                 "http",
		Registerer:                registerer,
		DoNotUseRequestPathFor404: true,
	}))
	e.Use(middleware.Session(d.Sessions, d.Cookie.Name))
	e.Use(middleware.Gate(d.Gate))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Sessions, d.Cookie)
	resetHandler := handler.NewResetHandler(d.Resets)
	userHandler := handler.NewUserHandler(d.Users)
	pageHandler := handler.NewPageHandler()
	healthHandler := handler.NewHealthHandler(d.Health)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.Session)
	auth.POST("/signup", userHandler.Signup)
	auth.POST("/reset-password", resetHandler.Request)
	auth.PUT("/reset-password", resetHandler.Confirm)

	// --- Account administration ---
	users := e.Group("/api/users", middleware.RBAC(domain.RoleAdmin))
	users.PUT("/:employeeId/status", userHandler.SetStatus)

	// --- Pages (behind the gate) ---
	e.GET("/", pageHandler.Home)
	e.GET("/dashboard", pageHandler.Dashboard)
	e.GET("/auth/login", pageHandler.Login)
	e.GET("/auth/signup", pageHandler.Signup)
	e.GET("/auth/reset-password", pageHandler.ResetPassword)
	e.GET("/legal/terms", pageHandler.Terms)
	e.GET("/legal/privacy", pageHandler.Privacy)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)         // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
