package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkim/storehub-backend/config"
	"github.com/mkim/storehub-backend/internal/app/controller"
	"github.com/mkim/storehub-backend/internal/app/repository"
	"github.com/mkim/storehub-backend/internal/app/service"
	"github.com/mkim/storehub-backend/internal/db"
	"github.com/mkim/storehub-backend/internal/middleware"
	"github.com/mkim/storehub-backend/internal/router"
	"github.com/mkim/storehub-backend/internal/scheduler"
	"github.com/mkim/storehub-backend/internal/token"
	"github.com/mkim/storehub-backend/pkg/logger"
	"github.com/mkim/storehub-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err, nil)
	}

	logger.Initialize(loggerConfig(cfg.Server.Environment))
	gin.SetMode(cfg.Server.GinMode)

	logger.Info("Starting storehub backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err, nil)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err, nil)
	}

	// Redis-backed blocklist when configured, in-memory otherwise.
	var blocklist token.Blocklist
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to connect to Redis", err, nil)
		}
		defer redis.Close()
		blocklist = token.NewRedisBlocklist(redis.GetClient())
	} else {
		blocklist = token.NewMemoryBlocklist()
	}

	pruner := scheduler.NewBlocklistScheduler(blocklist, "@hourly")
	if err := pruner.Start(); err != nil {
		logger.Fatal("Failed to start blocklist scheduler", err, nil)
	}
	defer pruner.Stop()

	userRepo := repository.NewUserRepository(db.GetDB())
	storeRepo := repository.NewStoreRepository(db.GetDB())
	itemRepo := repository.NewItemRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())

	authService := service.NewAuthService(userRepo, blocklist, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	storeService := service.NewStoreService(storeRepo)
	itemService := service.NewItemService(itemRepo, storeRepo, tagRepo)
	tagService := service.NewTagService(tagRepo, storeRepo)

	authController := controller.NewAuthController(authService)
	storeController := controller.NewStoreController(storeService)
	itemController := controller.NewItemController(itemService)
	tagController := controller.NewTagController(tagService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, blocklist)

	engine := router.NewRouter(
		cfg,
		authMiddleware,
		authController,
		storeController,
		itemController,
		tagController,
	).Setup()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	go func() {
		logger.Info("HTTP server listening", map[string]interface{}{
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced server shutdown", err, nil)
	}

	logger.Info("Server exited", nil)
}

func loggerConfig(environment string) logger.Config {
	if environment == "production" {
		return logger.Config{Level: "info", Format: "json"}
	}
	return logger.Config{Level: "debug", Format: "console", EnableColor: true}
}
