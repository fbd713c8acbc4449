package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/pingado/messaging-system/docs"
	"github.com/pingado/messaging-system/internal/api/handler"
	"github.com/pingado/messaging-system/internal/api/middleware"
	"github.com/pingado/messaging-system/internal/core/ports"
	"github.com/pingado/messaging-system/internal/core/service"
	"github.com/pingado/messaging-system/internal/infrastructure/db/postgres"
	"github.com/pingado/messaging-system/internal/infrastructure/db/redis"
	"github.com/pingado/messaging-system/internal/pkg/config"
	"github.com/pingado/messaging-system/internal/pkg/hashing"
	"github.com/pingado/messaging-system/internal/pkg/token"
)

// RouterDeps carries the externally constructed collaborators the router
// wires together.
type RouterDeps struct {
	Pool     *pgxpool.Pool
	Redis    *goredis.Client
	Pictures ports.FileStore
	// PicturesDir, when non-empty, is served statically at /pictures (local
	// storage driver only).
	PicturesDir string
	Config      *config.Config
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("messaging"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(deps.Pool)
	messageRepo := postgres.NewMessageRepository(deps.Pool)
	hasher := hashing.NewBcrypt()
	codec := token.NewJWTCodec(deps.Config.JWT.Secret, deps.Config.JWT.Audience, deps.Config.JWT.Issuer)
	dedup := redis.NewIdempotencyChecker(deps.Redis)

	authService := service.NewAuthService(userRepo, hasher, codec,
		deps.Config.JWT.TTL, deps.Config.JWT.RefreshTTL, deps.Log)
	userService := service.NewUserService(userRepo, hasher, deps.Pictures, deps.Log)
	messageService := service.NewMessageService(messageRepo, userRepo, dedup, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	messageHandler := handler.NewMessageHandler(messageService)
	guard := middleware.Auth(codec, userRepo)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- User routes ---
	e.POST("/users", userHandler.Create)
	e.GET("/users", userHandler.List, guard)
	e.GET("/users/:id", userHandler.Get, guard)
	e.PATCH("/users/:id", userHandler.Update, guard)
	e.DELETE("/users/:id", userHandler.Delete, guard)
	e.POST("/users/picture", userHandler.UploadPicture, guard)

	// --- Message routes (reads are public, mutations require a bearer token) ---
	e.GET("/messages", messageHandler.List)
	e.GET("/messages/:id", messageHandler.Get)
	e.POST("/messages", messageHandler.Create, guard)
	e.PATCH("/messages/:id", messageHandler.Update, guard)
	e.DELETE("/messages/:id", messageHandler.Delete, guard)

	if deps.PicturesDir != "" {
		e.Static("/pictures", deps.PicturesDir)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Pool, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
