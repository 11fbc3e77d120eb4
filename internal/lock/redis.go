package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "company-data:lock:"

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was taken by another process is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis shares the lock between processes. A lock expires after ttl even if
// its holder never releases it.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	logger *zap.SugaredLogger
}

func NewRedis(client *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
		retry:  50 * time.Millisecond,
		logger: logger,
	}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := redisKeyPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, key, err)
		}

		if ok {
			return func() {
				// The request context may already be done; release anyway.
				if err := releaseScript.Run(context.Background(), r.client, []string{redisKey}, token).Err(); err != nil {
					r.logger.Warnf("Failed to release lock %s, it stays held until it expires in %v: %v", key, r.ttl, err)
				}
			}, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, key, ctx.Err())
		}
	}
}
