package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sweetshop/sweetshop-api/docs"
	"github.com/sweetshop/sweetshop-api/internal/api/handler"
	"github.com/sweetshop/sweetshop-api/internal/api/middleware"
	"github.com/sweetshop/sweetshop-api/internal/core/domain"
	"github.com/sweetshop/sweetshop-api/internal/core/ports"
	"github.com/sweetshop/sweetshop-api/internal/core/service"
	mongodb "github.com/sweetshop/sweetshop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sweetshop/sweetshop-api/internal/infrastructure/db/redis"
)

const tokenTTL = 6 * time.Hour

// Options carries everything the router needs to wire the application.
// RedisClient may be nil, in which case the catalog cache is disabled.
type Options struct {
	DB          *mongo.Database
	RedisClient *redis.Client
	JWTSecret   string
	ImagesDir   string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("sweetshop"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(opts.DB)
	sweetRepo := mongodb.NewSweetRepository(opts.DB)

	var cache ports.CatalogCache
	if opts.RedisClient != nil {
		cache = redisdb.NewCatalogCache(opts.RedisClient)
	}

	tokenService := service.NewTokenService(opts.JWTSecret, tokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, opts.Logger)
	sweetService := service.NewSweetService(sweetRepo, cache, opts.Logger)

	authHandler := handler.NewAuthHandler(authService)
	sweetHandler := handler.NewSweetHandler(sweetService)

	auth := middleware.Auth(tokenService)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Sweets: CRUD + search ---
	e.POST("/api/sweets", sweetHandler.Create, auth)
	e.GET("/api/sweets", sweetHandler.List)
	e.GET("/api/sweets/search", sweetHandler.Search)
	e.PUT("/api/sweets/:id", sweetHandler.Update, auth)
	e.DELETE("/api/sweets/:id", sweetHandler.Delete, auth, adminOnly)

	// --- Inventory: purchase + restock ---
	e.POST("/api/sweets/:id/purchase", sweetHandler.Purchase, auth)
	e.POST("/api/sweets/:id/restock", sweetHandler.Restock, auth, adminOnly)

	// --- Static product images ---
	e.Static("/Images", opts.ImagesDir)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.DB, opts.RedisClient)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability + docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
