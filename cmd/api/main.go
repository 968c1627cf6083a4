package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/richxcame/transport-backend/internal/customers"
	"github.com/richxcame/transport-backend/internal/drivers"
	"github.com/richxcame/transport-backend/internal/flights"
	"github.com/richxcame/transport-backend/internal/holidays"
	"github.com/richxcame/transport-backend/internal/locations"
	"github.com/richxcame/transport-backend/internal/pricing"
	"github.com/richxcame/transport-backend/internal/trips"
	"github.com/richxcame/transport-backend/internal/vehicles"
	"github.com/richxcame/transport-backend/pkg/common"
	"github.com/richxcame/transport-backend/pkg/config"
	"github.com/richxcame/transport-backend/pkg/database"
	"github.com/richxcame/transport-backend/pkg/logger"
	"github.com/richxcame/transport-backend/pkg/middleware"
	"github.com/richxcame/transport-backend/pkg/redis"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load("api")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := database.Migrate(&cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Connected to PostgreSQL")

	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	logger.Info("Connected to Redis")

	// repositories
	customerRepo := customers.NewRepository(db)
	pricingRepo := pricing.NewRepository(db)
	holidayRepo := holidays.NewRepository(db)
	locationRepo := locations.NewRepository(db)
	vehicleRepo := vehicles.NewRepository(db)
	driverRepo := drivers.NewRepository(db)
	tripRepo := trips.NewRepository(db)

	// services
	pricingSvc := pricing.NewService(pricingRepo, holidayRepo)
	tripSvc := trips.NewService(tripRepo, driverRepo, locationRepo, pricingSvc)
	flightSvc := flights.NewService(
		flights.NewFR24Client(cfg.FR24),
		flights.NewAvinorClient(cfg.Avinor),
	)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics(cfg.Server.ServiceName))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Correlation-ID"}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.RateLimit(redisClient, 300, time.Minute))

	router.GET("/healthz", common.HealthCheckWithDeps(cfg.Server.ServiceName, version, map[string]func() error{
		"postgres": func() error { return db.Ping(context.Background()) },
		"redis":    func() error { return redisClient.Ping(context.Background()).Err() },
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		customers.NewHandler(customerRepo).RegisterRoutes(api)
		pricing.NewHandler(pricingRepo).RegisterRoutes(api)
		holidays.NewHandler(holidayRepo).RegisterRoutes(api)
		locations.NewHandler(locationRepo).RegisterRoutes(api)
		vehicles.NewHandler(vehicleRepo).RegisterRoutes(api)
		drivers.NewHandler(driverRepo).RegisterRoutes(api)
		trips.NewHandler(tripSvc).RegisterRoutes(api)
		flights.NewHandler(flightSvc, cfg.Avinor.Airport).RegisterRoutes(api)
	}

	addr := ":" + cfg.Server.Port
	logger.Info("API server starting", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
