package main

import (
	"alcyxob/travel-planner/internal/api"
	"alcyxob/travel-planner/internal/cache"
	"alcyxob/travel-planner/internal/config"
	"alcyxob/travel-planner/internal/logger"
	"alcyxob/travel-planner/internal/metrics"
	"alcyxob/travel-planner/internal/repository/mongo"
	"alcyxob/travel-planner/internal/seed"
	"alcyxob/travel-planner/internal/service"
	"alcyxob/travel-planner/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title Travel Planner API
// @version 1.0
// @description Destinations, three-tier travel plans and shareable user trips.
// @host localhost:8080
// @BasePath /api
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level, cfg.Log.Format)
	appLogger.Info("Starting Travel Planner Server...")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		appLogger.WithError(err).Fatal("Could not connect to MongoDB")
	}
	defer func() {
		appLogger.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			appLogger.WithError(err).Error("Failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	appLogger.WithField("database", cfg.Database.Name).Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB, appLogger)
	}()

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// --- Initialize Repositories ---
	destinationRepo := mongo.NewMongoDestinationRepository(appDB)
	travelPlanRepo := mongo.NewMongoTravelPlanRepository(appDB)
	userTripRepo := mongo.NewMongoUserTripRepository(appDB)

	// --- Optional collaborators ---
	var destinationOpts []service.DestinationServiceOption

	if cfg.Redis.URL != "" {
		planCache, err := cache.NewRedisCache(cfg.Redis.URL, "travel-planner:")
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, travel plans will not be cached")
		} else {
			defer planCache.Close()
			destinationOpts = append(destinationOpts, service.WithPlanCache(planCache, cfg.Redis.TTL))
			appLogger.Info("Travel plan cache enabled.")
		}
	}

	if cfg.S3.BucketName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		fileStorage, err := storage.NewS3Storage(ctx, cfg.S3, appLogger)
		cancel()
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize S3 storage")
		}
		destinationOpts = append(destinationOpts, service.WithImageStorage(fileStorage, cfg.S3.PresignExpiry))
	}

	// --- Initialize Services ---
	destinationService := service.NewDestinationService(destinationRepo, travelPlanRepo, appMetrics, appLogger, destinationOpts...)
	tripService := service.NewTripService(userTripRepo, appMetrics, appLogger)

	fixture, err := seed.DefaultFixture()
	if err != nil {
		appLogger.WithError(err).Fatal("Could not load seed data")
	}
	seeder := seed.NewSeeder(destinationService, fixture, appLogger)

	// --- Initialize Gin Engine ---
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		api.RequestLogger(appLogger),
		appMetrics.Middleware(),
		api.CORSMiddleware(cfg.CORS.Origins),
	)

	api.SetupRoutes(router, appLogger, destinationService, tripService, seeder, registry)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	appLogger.WithField("address", cfg.Server.Address).Info("Server starting")

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("ListenAndServe error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
		return
	}

	appLogger.Info("Server exiting.")
}
