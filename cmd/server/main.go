// Command guardian-server starts the mangrove guardian API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mangrovewatch/guardian-system/internal/api"
	"github.com/mangrovewatch/guardian-system/internal/core/service"
	"github.com/mangrovewatch/guardian-system/internal/infrastructure/config"
	redisdb "github.com/mangrovewatch/guardian-system/internal/infrastructure/db/redis"
	"github.com/mangrovewatch/guardian-system/internal/infrastructure/memstore"
	"github.com/mangrovewatch/guardian-system/internal/infrastructure/queue"
	"github.com/mangrovewatch/guardian-system/internal/websocket"
	"github.com/mangrovewatch/guardian-system/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting guardian server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional Redis-backed submission dedup. The service runs fine without
	// it; an empty REDIS_ADDR leaves idempotency keys unenforced.
	var rdb *redis.Client
	var idempotency service.IdempotencyStore
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = client.Close() }()
		rdb = client
		idempotency = redisdb.NewIdempotencyStore(client)
	}

	store := memstore.New()
	registry := websocket.NewRegistry(log)

	notifications := service.NewNotificationService(store.Notifications, registry, log)
	dispatcher := queue.NewDispatcher(cfg.NotificationWorkers, notifications, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, store, registry, dispatcher, notifications, idempotency, rdb)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}

	log.Info().Msg("shutdown complete")
}
