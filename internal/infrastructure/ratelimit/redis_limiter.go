package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "gateway:ratelimit:"

// RedisLimiter counts requests per key in fixed one minute windows shared by every gateway instance
type RedisLimiter struct {
	client            redis.UniversalClient
	requestsPerMinute int64
	now               func() time.Time
}

// NewRedisLimiter creates a limiter backed by client
func NewRedisLimiter(client redis.UniversalClient, requestsPerMinute int) *RedisLimiter {
	return &RedisLimiter{
		client:            client,
		requestsPerMinute: int64(requestsPerMinute),
		now:               time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := l.now().Unix() / int64(Window.Seconds())
	counterKey := fmt.Sprintf("%s%s:%d", keyPrefix, key, window)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, counterKey)
		pipe.Expire(ctx, counterKey, 2*Window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}

	return incr.Val() <= l.requestsPerMinute, nil
}
