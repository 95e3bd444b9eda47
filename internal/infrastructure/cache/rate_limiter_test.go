package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/artbid/auction-marketplace-backend/internal/infrastructure/cache"
)

func newTestLimiter(t *testing.T) cache.RateLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisRateLimiter(client, zaptest.NewLogger(t))
}

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	limiter := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "bidder-1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "bidder-1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "fourth request must be blocked")
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := newTestLimiter(t)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "bidder-1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "bidder-1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "bidder-2", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "a different key has its own window")
}

func TestRateLimiter_BlockedRequestDoesNotConsumeQuota(t *testing.T) {
	limiter := newTestLimiter(t)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "bidder-1", 1, time.Minute)
	require.NoError(t, err)
	_, err = limiter.Allow(ctx, "bidder-1", 1, time.Minute)
	require.NoError(t, err)

	remaining, err := limiter.Remaining(ctx, "bidder-1", 1, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining, "only the allowed request counts")
}

func TestRateLimiter_Reset(t *testing.T) {
	limiter := newTestLimiter(t)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "bidder-1", 1, time.Minute)
	require.NoError(t, err)

	require.NoError(t, limiter.Reset(ctx, "bidder-1"))

	allowed, err := limiter.Allow(ctx, "bidder-1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}
