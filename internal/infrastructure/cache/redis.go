package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetscribe/internal/infrastructure"
	"github.com/johnquangdev/meetscribe/pkg/config"
)

// NewRedisClient creates a Redis client and waits until it answers PING
func NewRedisClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	err := infrastructure.Retry(ctx, logger, "redis", func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetRedisAddr(), err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.GetRedisAddr()), zap.Int("db", cfg.Redis.DB))
	return client, nil
}
