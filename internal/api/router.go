package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tinnova/vehicle-inventory/internal/api/handler"
	"github.com/tinnova/vehicle-inventory/internal/api/middleware"
	"github.com/tinnova/vehicle-inventory/internal/core/ports"
	"github.com/tinnova/vehicle-inventory/internal/core/service"
	"github.com/tinnova/vehicle-inventory/internal/infrastructure/config"
	mongodb "github.com/tinnova/vehicle-inventory/internal/infrastructure/db/mongo"
	redisdb "github.com/tinnova/vehicle-inventory/internal/infrastructure/db/redis"
	"github.com/tinnova/vehicle-inventory/internal/infrastructure/fx"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the rate cache then falls back to the in-memory slot.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	vehicleRepo := mongodb.NewVehicleRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)

	var rateCache ports.RateCache
	if rdb != nil {
		rateCache = redisdb.NewRateCache(rdb, cfg.Exchange.CacheTTL, log)
	} else {
		rateCache = fx.NewMemoryRateCache(cfg.Exchange.CacheTTL)
	}

	providers := []ports.QuoteProvider{
		fx.NewAwesomeAPIProvider(cfg.Exchange.PrimaryURL, cfg.Exchange.Timeout),
		fx.NewFrankfurterProvider(cfg.Exchange.FallbackURL, cfg.Exchange.Timeout),
	}
	exchangeService := service.NewExchangeService(providers, rateCache, log)

	vehicleService := service.NewVehicleService(vehicleRepo, exchangeService, log)

	authHandler := handler.NewAuthHandler(authService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)

	// Gateway then policy: authentication runs once per request, the policy
	// decides afterwards whether anonymity or the resolved role is enough.
	e.Use(middleware.Auth(tokenService, userRepo, log))
	e.Use(middleware.Policy(middleware.DefaultRules()))

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Inventory routes ---
	e.GET("/vehicles", vehicleHandler.List)
	e.GET("/vehicles/search", vehicleHandler.Search)
	e.GET("/vehicles/price", vehicleHandler.SearchByPrice)
	e.GET("/vehicles/report/brand", vehicleHandler.BrandReport)
	e.GET("/vehicles/:id", vehicleHandler.Get)
	e.POST("/vehicles", vehicleHandler.Create)
	e.PUT("/vehicles/:id", vehicleHandler.Update)
	e.PATCH("/vehicles/:id", vehicleHandler.Patch)
	e.DELETE("/vehicles/:id", vehicleHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if rdb != nil {
		readiness := handler.NewReadinessHandler(db, rdb)
		e.GET("/health/ready", readiness.Readiness)
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
