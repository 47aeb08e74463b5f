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
	"github.com/yeremiapane/restaurant-management/config"
	"github.com/yeremiapane/restaurant-management/database"
	"github.com/yeremiapane/restaurant-management/kds"
	"github.com/yeremiapane/restaurant-management/metrics"
	"github.com/yeremiapane/restaurant-management/router"
	"github.com/yeremiapane/restaurant-management/services"
	"github.com/yeremiapane/restaurant-management/utils"
)

func main() {
	cfg, err := config.Load()
	utils.InitLogger(cfg.LogLevel)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.ConfigureJWT(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	ctx := context.Background()

	store, err := database.Connect(ctx, cfg.Store)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to document store: %v", err)
	}
	utils.InfoLogger.WithField("driver", cfg.Store.Driver).Info("Document store connected")

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	var blacklist services.TokenBlacklist = services.NewMemoryBlacklist()
	redisClient, err := config.InitRedis(ctx, cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		blacklist = services.NewRedisBlacklist(redisClient)
	}

	svc := services.New(store, metrics.NewStoreMetrics(), services.UTCClock)

	r := router.SetupRouter(router.Deps{
		Services:       svc,
		DB:             db,
		Blacklist:      blacklist,
		Hub:            kds.Default(),
		CORSOrigin:     cfg.CORSOrigin,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.WithError(err).Error("Server forced to shutdown")
	}
	if err := database.Close(shutdownCtx); err != nil {
		utils.ErrorLogger.WithError(err).Error("Failed to close document store")
	}
	utils.InfoLogger.Info("Server exited")
}
