package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ticketec/order-system/internal/api/handler"
	"github.com/ticketec/order-system/internal/api/middleware"
	"github.com/ticketec/order-system/internal/core/domain"
	"github.com/ticketec/order-system/internal/core/ports"
)

// Deps bundles everything the router needs. DB and Redis may be nil when the
// flat-file backend is active; the readiness probe skips them.
type Deps struct {
	AuthService   ports.AuthService
	OrderService  ports.OrderService
	TicketService ports.TicketService
	Catalog       *domain.Catalog
	Sessions      ports.SessionStore
	JWTSecret     string
	DB            *sql.DB
	Redis         *redis.Client
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ticketec"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	orderHandler := handler.NewOrderHandler(deps.OrderService)
	ticketHandler := handler.NewTicketHandler(deps.OrderService, deps.TicketService)
	authMiddleware := middleware.Auth(deps.JWTSecret, deps.Sessions)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/catalog", catalogHandler.Get)

	// --- Session-gated routes ---
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.POST("/orders/quote", orderHandler.Quote, authMiddleware)
	e.POST("/tickets", ticketHandler.Create, authMiddleware)
	e.GET("/tickets", ticketHandler.List, authMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
