package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/starlog/config"
	"github.com/d60-Lab/starlog/internal/api"
	"github.com/d60-Lab/starlog/internal/api/handler"
	"github.com/d60-Lab/starlog/internal/cache"
	"github.com/d60-Lab/starlog/internal/repository"
	"github.com/d60-Lab/starlog/internal/service"
	"github.com/d60-Lab/starlog/pkg/blob"
	"github.com/d60-Lab/starlog/pkg/database"
	"github.com/d60-Lab/starlog/pkg/logger"
	"github.com/d60-Lab/starlog/pkg/sentryx"
	"github.com/d60-Lab/starlog/pkg/tracing"
)

// @title StarLog API
// @version 1.0
// @description 追星日記：时间线与票夹
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := sentryx.Init(cfg.Sentry); err != nil {
		logger.Warn("sentry disabled", zap.Error(err))
	}
	defer sentryx.Flush(2 * time.Second)

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}
	defer database.Close(db)
	if cfg.Database.AutoMigrate {
		if err := repository.InitSchema(db); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
	}

	var views *cache.ViewCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, read view cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			views = cache.NewViewCache(client, cfg.Redis.ViewTTL)
		}
	}

	store, err := blob.NewOSStore(cfg.Storage.Root, cfg.Storage.PublicBaseURL)
	if err != nil {
		logger.Fatal("init blob store", zap.Error(err))
	}

	posts := service.NewPostService(repository.NewPostRepository(db), store, views)
	configs := service.NewConfigService(repository.NewSiteConfigRepository(db), store, views, cfg.Defaults)
	h := handler.NewHandler(posts, configs, service.NewViewService(posts, configs, views), cfg.Server.MaxUploadBytes)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.SetupRouter(cfg, h, store.FileSystem()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", zap.Error(err))
	}
}
