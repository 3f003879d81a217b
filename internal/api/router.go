package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/vanguard/directory/docs"
	"github.com/vanguard/directory/internal/api/handler"
	"github.com/vanguard/directory/internal/api/middleware"
	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
	"github.com/vanguard/directory/internal/infrastructure/http/handlers"
)

// Dependencies is everything the HTTP layer needs.
type Dependencies struct {
	Projects ports.ProjectService
	Users    ports.UserService
	Chats    ports.ChatService
	Identity ports.IdentityProvider
	Paging   handler.Paging
	// Ready maps dependency names to readiness checks.
	Ready map[string]handlers.Pinger
	Log   zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default prometheus registry.
	Registry *prometheus.Registry
	// BodyLimit caps request bodies, e.g. "4M". Empty disables the cap.
	BodyLimit string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "directory",
		Registerer: registerer,
	}))
	if deps.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(deps.BodyLimit))
	}

	// --- Operations (no identity required) ---
	healthHandler := handlers.NewHealthHandler()
	readyHandler := handlers.NewReadinessHandler(deps.Ready)

	e.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", readyHandler.Readiness) // readiness – is the store up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	projects := handler.NewProjectHandler(deps.Projects, deps.Paging)
	users := handler.NewUserHandler(deps.Users, deps.Paging)
	chats := handler.NewChatHandler(deps.Chats, deps.Paging)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	g := e.Group("/api", middleware.Identity(deps.Identity))

	g.GET("/session", users.Session)

	// Static project paths are registered before /:id so they win.
	g.GET("/projects", projects.List)
	g.POST("/projects", projects.Create)
	g.GET("/projects/export", projects.Export, adminOnly)
	g.POST("/projects/import", projects.Import, adminOnly)
	g.POST("/projects/bulk-delete", projects.BulkDelete, adminOnly)
	g.GET("/projects/:id", projects.Get)
	g.PUT("/projects/:id", projects.Update)
	g.DELETE("/projects/:id", projects.Delete)
	g.POST("/projects/:id/vote", projects.Vote)

	g.GET("/users", users.List)
	g.POST("/users", users.Create, adminOnly)
	g.GET("/users/:id", users.Get)

	g.GET("/chats", chats.List)
	g.POST("/chats", chats.Create)
	g.GET("/chats/:id/messages", chats.Messages)
	g.POST("/chats/:id/messages", chats.Send)

	return e
}
