package core

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shubhamc1947/company-data/internal/lock"
	"go.uber.org/zap"
)

// NewLocker returns the refresh lock shared through Redis when an address is
// configured, and a process local one otherwise. The returned function
// releases the Redis connection.
func NewLocker(ctx context.Context, cfg RedisConfig, logger *zap.SugaredLogger) (lock.Locker, func() error, error) {
	if cfg.Addr == "" {
		return lock.NewLocal(), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return lock.NewRedis(client, cfg.LockTTL, logger), client.Close, nil
}
