package cache

import (
	"context"
	"fmt"

	"bloghub/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// Connect creates a redis client and verifies the connection with a ping.
// Redis backs the login rate limiter; the durable data lives in PostgreSQL.
func Connect(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}
