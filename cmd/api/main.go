package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/motorent/fleet-api/internal/catalog"
	"github.com/motorent/fleet-api/internal/fleet"
	"github.com/motorent/fleet-api/internal/maintenance"
	"github.com/motorent/fleet-api/internal/orders"
	"github.com/motorent/fleet-api/internal/payouts"
	"github.com/motorent/fleet-api/internal/renters"
	"github.com/motorent/fleet-api/internal/tariffs"
	"github.com/motorent/fleet-api/pkg/cache"
	"github.com/motorent/fleet-api/pkg/common"
	"github.com/motorent/fleet-api/pkg/config"
	"github.com/motorent/fleet-api/pkg/database"
	"github.com/motorent/fleet-api/pkg/errors"
	"github.com/motorent/fleet-api/pkg/eventbus"
	"github.com/motorent/fleet-api/pkg/logger"
	"github.com/motorent/fleet-api/pkg/middleware"
	redisclient "github.com/motorent/fleet-api/pkg/redis"
)

const (
	serviceName = "fleet-api"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	// Error tracking is optional: run without it when no DSN is set
	sentryCfg := errors.DefaultSentryConfig()
	sentryCfg.Environment = cfg.Server.Environment
	if err := errors.InitSentry(sentryCfg); err != nil {
		logger.Warn("Sentry disabled", zap.Error(err))
	} else {
		defer errors.Flush(2 * time.Second)
	}

	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(pool)

	// Redis backs the catalog cache; the service degrades to
	// database-only reads when it is unavailable.
	var cacheManager *cache.Manager
	if cfg.Redis.Enabled {
		redisClient, err := redisclient.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, catalog caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheManager = cache.NewManager(redisClient)
		}
	}

	var bus *eventbus.Bus
	if cfg.NATS.Enabled {
		busCfg := eventbus.DefaultConfig()
		busCfg.URL = cfg.NATS.URL
		busCfg.Name = serviceName
		busCfg.StreamName = cfg.NATS.Stream
		bus, err = eventbus.New(busCfg)
		if err != nil {
			logger.Warn("NATS unavailable, domain events disabled", zap.Error(err))
			bus = nil
		} else {
			defer bus.Close()
		}
	}

	catalogService := catalog.NewService(catalog.NewRepository(pool), cacheManager)
	catalogHandler := catalog.NewHandler(catalogService)

	fleetService := fleet.NewService(fleet.NewRepository(pool), bus)
	fleetHandler := fleet.NewHandler(fleetService)

	maintenanceService := maintenance.NewService(maintenance.NewRepository(pool), bus)
	maintenanceHandler := maintenance.NewHandler(maintenanceService)

	tariffService := tariffs.NewService(tariffs.NewRepository(pool))
	tariffHandler := tariffs.NewHandler(tariffService)

	renterService := renters.NewService(renters.NewRepository(pool))
	renterHandler := renters.NewHandler(renterService)

	orderService := orders.NewService(orders.NewRepository(pool), tariffService, bus)
	orderHandler := orders.NewHandler(orderService)

	payoutService := payouts.NewService(payouts.NewRepository(pool), bus)
	payoutHandler := payouts.NewHandler(payoutService)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.RecoveryWithSentry())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.RequestLogger(serviceName))

	router.NoRoute(func(c *gin.Context) {
		common.ErrorResponse(c, http.StatusNotFound, "route not found")
	})
	router.NoMethod(func(c *gin.Context) {
		common.ErrorResponse(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.GET("/healthz", common.HealthCheck(serviceName, version))
	router.GET("/health/live", common.LivenessProbe(serviceName, version))
	router.GET("/health/ready", common.ReadinessProbe(serviceName, version, map[string]func() error{
		"postgres": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(ctx)
		},
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		catalogHandler.RegisterRoutes(api)
		fleetHandler.RegisterRoutes(api)
		maintenanceHandler.RegisterRoutes(api)
		tariffHandler.RegisterRoutes(api)
		renterHandler.RegisterRoutes(api)
		orderHandler.RegisterRoutes(api)
		payoutHandler.RegisterRoutes(api)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Fleet API starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
