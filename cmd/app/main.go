package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/esp-integration/backend/internal/api/http"
	"github.com/esp-integration/backend/internal/cache"
	"github.com/esp-integration/backend/internal/config"
	"github.com/esp-integration/backend/internal/db"
	"github.com/esp-integration/backend/internal/esp"
	"github.com/esp-integration/backend/internal/repository"
	"github.com/esp-integration/backend/internal/server"
	"github.com/esp-integration/backend/internal/service"
	"github.com/esp-integration/backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	appLogger := logger.Init(cfg.Env, cfg.LogLevel)
	defer appLogger.Sync() //nolint:errcheck

	logger.Info("starting esp integration api", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			logger.Error("error when closing", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	// Lists cache is optional, the service runs without it
	var listsCache *cache.ListsCache
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Cache)
		if err != nil {
			logger.Error("redis connect problem", zap.Error(err))
			os.Exit(1)
		}
		listsCache = cache.NewListsCache(redisClient, cfg.Cache.ListsTTL)
		logger.Info("redis connection done")
	}

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	registry := esp.NewRegistry(cfg.ESP)
	services := service.NewServices(service.Deps{
		Repos:      repos,
		Registry:   registry,
		ListsCache: listsCache,
	})
	handlers := apiHttp.NewHandlers(services, cfg)

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	logger.Info("app stopped")
}
