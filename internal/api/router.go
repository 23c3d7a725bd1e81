package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/mangrovewatch/guardian-system/internal/api/handler"
	"github.com/mangrovewatch/guardian-system/internal/api/middleware"
	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
	"github.com/mangrovewatch/guardian-system/internal/core/service"
	"github.com/mangrovewatch/guardian-system/internal/infrastructure/config"
	"github.com/mangrovewatch/guardian-system/internal/infrastructure/memstore"
	"github.com/mangrovewatch/guardian-system/internal/websocket"
	"github.com/mangrovewatch/guardian-system/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The notification sink and service come pre-built from the entry point so
// the dispatcher's lifecycle stays under main's control.
func NewRouter(
	cfg *config.Config,
	store *memstore.Store,
	registry *websocket.Registry,
	sink ports.NotificationSink,
	notifications ports.NotificationService,
	idempotency service.IdempotencyStore,
	rdb *redis.Client,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("guardian"))

	// --- Dependencies ---
	log := logger.Get()
	scoring := service.NewScoringService(store.Users, log)
	threats := service.NewThreatService(store.Threats, store.Users, scoring, sink, idempotency, log)
	users := service.NewUserService(store.Users, store.Threats, store.Achievements, log)
	auth := service.NewAuthService(store.Users, cfg.JWTSecret, 24*time.Hour)

	authHandler := handler.NewAuthHandler(auth)
	threatHandler := handler.NewThreatHandler(threats, cfg.UploadDir)
	userHandler := handler.NewUserHandler(users)
	notificationHandler := handler.NewNotificationHandler(notifications)
	achievementHandler := handler.NewAchievementHandler(store.Achievements)
	wsHandler := handler.NewWSHandler(registry)

	authRequired := middleware.Auth(cfg.JWTSecret)
	authorityOnly := middleware.RBAC(string(domain.RoleAuthority))

	// --- Auth ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Users and community stats ---
	e.GET("/api/users/:id", userHandler.Get)
	e.PATCH("/api/users/:id", userHandler.UpdateProfile, authRequired)
	e.GET("/api/users/:id/stats", userHandler.Stats)
	e.GET("/api/users/:id/achievements", userHandler.Achievements)
	e.GET("/api/users/:id/notifications", notificationHandler.ListForUser, authRequired)
	e.GET("/api/leaderboard", userHandler.Leaderboard)
	e.GET("/api/dashboard/stats", userHandler.Dashboard)

	// --- Threat reports ---
	e.POST("/api/threats", threatHandler.Create, authRequired, echomiddleware.BodyLimit("5M"))
	e.GET("/api/threats", threatHandler.List)
	e.GET("/api/threats/nearby/:lat/:lng", threatHandler.Nearby)
	e.GET("/api/threats/:id", threatHandler.Get)
	e.PATCH("/api/threats/:id", threatHandler.Update, authRequired, authorityOnly)

	// --- Achievements and notifications ---
	e.GET("/api/achievements", achievementHandler.List)
	e.PATCH("/api/notifications/:id/read", notificationHandler.MarkRead, authRequired)

	// --- Live sessions ---
	e.GET("/ws", wsHandler.Serve)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
