//go:build unit
// +build unit

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allowN(t *testing.T, limiter Limiter, key string, n int) int {
	t.Helper()
	allowed := 0
	for i := 0; i < n; i++ {
		ok, err := limiter.Allow(context.Background(), key)
		require.NoError(t, err)
		if ok {
			allowed++
		}
	}
	return allowed
}

func TestMemoryLimiter(t *testing.T) {
	current := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(5)
	limiter.now = func() time.Time { return current }

	t.Run("BurstThenReject", func(t *testing.T) {
		assert.Equal(t, 5, allowN(t, limiter, "10.0.0.1", 8))
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		assert.Equal(t, 5, allowN(t, limiter, "10.0.0.2", 5))
	})

	t.Run("Refills", func(t *testing.T) {
		current = current.Add(2 * Window)
		assert.Equal(t, 5, allowN(t, limiter, "10.0.0.1", 8))
	})

	t.Run("EvictsIdleKeys", func(t *testing.T) {
		assert.Equal(t, 2, limiter.Len())
		current = current.Add(defaultIdleTTL + time.Second)
		allowN(t, limiter, "10.0.0.3", 1)
		assert.Equal(t, 1, limiter.Len())
	})
}

func TestRedisLimiter(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	current := time.Date(2030, 1, 1, 12, 0, 10, 0, time.UTC)
	limiter := NewRedisLimiter(client, 3)
	limiter.now = func() time.Time { return current }

	assert.Equal(t, 3, allowN(t, limiter, "10.0.0.1", 5))
	assert.Equal(t, 3, allowN(t, limiter, "10.0.0.2", 3))

	keys := server.Keys()
	require.Len(t, keys, 2)
	assert.True(t, server.TTL(keys[0]) > 0)

	current = current.Add(Window)
	assert.Equal(t, 3, allowN(t, limiter, "10.0.0.1", 5))
}

func TestRedisLimiter_Unavailable(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	server.Close()

	_, err := NewRedisLimiter(client, 3).Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}
