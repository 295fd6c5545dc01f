package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/bloombuddy/plant-care-api/internal/api/handler"
	"github.com/bloombuddy/plant-care-api/internal/api/middleware"
	"github.com/bloombuddy/plant-care-api/internal/core/ports"
	"github.com/bloombuddy/plant-care-api/internal/core/service"
	"github.com/bloombuddy/plant-care-api/internal/infrastructure/config"
	mongodb "github.com/bloombuddy/plant-care-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bloombuddy/plant-care-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, smsQueue ports.SMSQueue, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("plantcare"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	otpRepo := mongodb.NewOTPRepository(db)
	gardenRepo := mongodb.NewGardenRepository(db)
	plantRepo := mongodb.NewPlantRepository(db)

	cooldown := redisdb.NewCooldownStore(rdb, cfg.OTP.Cooldown)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionTTL)
	otpService := service.NewOTPService(otpRepo, userRepo, authService, cooldown, smsQueue, log)
	gardenService := service.NewGardenService(gardenRepo)
	plantService := service.NewPlantService(plantRepo, gardenRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL, cfg.Production())
	otpHandler := handler.NewOTPHandler(otpService, authHandler, cfg.Production())
	gardenHandler := handler.NewGardenHandler(gardenService)
	plantHandler := handler.NewPlantHandler(plantService)

	session := middleware.Session(cfg.JWTSecret)
	otpLimiter := middleware.NewRateLimiter(rate.Limit(cfg.OTP.SendRate), cfg.OTP.SendBurst)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.POST("/otp/send", otpHandler.Send, otpLimiter.Limit)
	e.POST("/otp/verify", otpHandler.Verify, otpLimiter.Limit)
	e.GET("/protected", authHandler.Protected, session)

	// --- Downstream CRUD (session required) ---
	v1 := e.Group("/v1", session)
	v1.POST("/gardens", gardenHandler.Create)
	v1.GET("/gardens", gardenHandler.List)
	v1.GET("/gardens/:id", gardenHandler.Get)
	v1.PUT("/gardens/:id", gardenHandler.Update)
	v1.DELETE("/gardens/:id", gardenHandler.Delete)
	v1.GET("/gardens/:id/plants", plantHandler.ListByGarden)
	v1.POST("/plants", plantHandler.Create)
	v1.GET("/plants/:id", plantHandler.Get)
	v1.PUT("/plants/:id", plantHandler.Update)
	v1.DELETE("/plants/:id", plantHandler.Delete)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
