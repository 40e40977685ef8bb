package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"landlord/server/config"
	"landlord/server/internal/ai"
	"landlord/server/internal/api"
	"landlord/server/internal/auth"
	"landlord/server/internal/cache"
	"landlord/server/internal/database"
	"landlord/server/internal/geocoding"
	"landlord/server/internal/processor"
	"landlord/server/internal/queue"
	"landlord/server/internal/repository"
	"landlord/server/internal/scheduler"
)

// Nominatim's public usage policy allows one request per second.
const geocodeInterval = time.Second

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("log_level", cfg.Server.LogLevel).Warn("Unknown log level, keeping info")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabase(cfg.Database.URL, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	repo := repository.New(db.GetDB())

	redisCache, err := cache.New(cfg.Redis.URL, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to configure cache")
	}
	defer redisCache.Close()

	adapter := ai.NewAdapter(cfg, logger)
	if !adapter.Enabled() {
		logger.Warn("OPENAI_API_KEY not set, AI endpoints will return an error envelope")
	}

	tokens := auth.NewJWTManager(cfg.Auth.SecretKey, time.Duration(cfg.Auth.AccessTokenExpiry)*time.Minute)

	deps := api.Dependencies{
		Repo:   repo,
		Cache:  redisCache,
		AI:     adapter,
		Tokens: tokens,
		Config: cfg,
		Logger: logger,
	}

	var geocodeProcessor *processor.GeocodeProcessor
	if cfg.Geocoding.Enabled {
		geocoder := geocoding.NewGeocoder(cfg.Geocoding.URL, redisCache, geocodeInterval, logger)
		jobs := queue.NewJobQueue(cfg.Geocoding.QueueSize, logger)
		geocodeProcessor = processor.NewGeocodeProcessor(repo, geocoder, jobs, cfg, logger)
		geocodeProcessor.Start()
		deps.Geocoder = geocodeProcessor
		logger.Info("Background geocoding enabled")
	}

	sweeper := scheduler.NewScheduler(repo, cfg.Scheduler.OverdueSweepInterval, logger)
	sweeper.Start()

	router := gin.New()
	api.SetupRoutes(router, api.NewHandler(deps), cfg)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	sweeper.Stop()
	if geocodeProcessor != nil {
		geocodeProcessor.Stop()
	}
	logger.Info("Server stopped")
}
