package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chirper/chirp-api/internal/api/handler"
	"github.com/chirper/chirp-api/internal/api/middleware"
	"github.com/chirper/chirp-api/internal/core/service"
	mongodb "github.com/chirper/chirp-api/internal/infrastructure/db/mongo"
	redisdb "github.com/chirper/chirp-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit dispatcher is constructed in main (it owns the worker lifecycle)
// and passed in.
func NewRouter(client *mongo.Client, db *mongo.Database, rdb *redis.Client, audit service.AuditDispatcher, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("chirp"))

	// --- Dependencies ---
	denylist := redisdb.NewTokenDenylist(rdb)

	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, denylist, jwtSecret, 24*time.Hour)
	authHandler := handler.NewAuthHandler(authService)

	chirpRepo := mongodb.NewChirpRepository(db)
	tx := mongodb.NewTransactor(client)
	chirpService := service.NewChirpService(chirpRepo, tx, audit, log)
	chirpHandler := handler.NewChirpHandler(chirpService)

	authMiddleware := middleware.Auth(jwtSecret, denylist)

	// --- Public routes ---
	e.GET("/", chirpHandler.List)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	chirps := e.Group("/chirps", authMiddleware)
	chirps.POST("", chirpHandler.Create)
	chirps.GET("/:id/edit", chirpHandler.Edit)
	chirps.PATCH("/:id", chirpHandler.Update)
	chirps.DELETE("/:id", chirpHandler.Delete)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
