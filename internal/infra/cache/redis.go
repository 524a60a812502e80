package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
)

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// NewAvailabilityCache returns the Redis cache when REDIS_ADDR is set and
// reachable, and a no-op cache otherwise.
func NewAvailabilityCache(ctx context.Context, cfg *config.Config, client *redis.Client, log *zap.Logger) domain.AvailabilityCache {
	if client == nil || !cfg.RedisEnabled() {
		log.Info("availability cache disabled")
		return domain.NoopCache{}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, availability cache disabled", zap.Error(err))
		return domain.NoopCache{}
	}

	return NewAvailabilityRedisCache(client, cfg.AvailabilityCacheTTL, log)
}
