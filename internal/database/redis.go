package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/config"
	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to the cache. REDIS_PASSWORD overrides any
// password in REDIS_URL.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("Successfully connected to redis", "addr", opts.Addr)
	return client, nil
}
