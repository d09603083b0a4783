package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("counter store down")
}

func TestLimiterFixedWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	limiter := NewLimiter(store, 5, time.Minute, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		decision := limiter.Allow(ctx, "203.0.113.7")
		assert.True(t, decision.Allowed, "call %d", i+1)
	}

	decision := limiter.Allow(ctx, "203.0.113.7")
	assert.False(t, decision.Allowed)
	assert.Greater(t, decision.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, decision.RetryAfter, time.Minute)
}

func TestLimiterWindowExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	limiter := NewLimiter(store, 5, time.Minute, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		limiter.Allow(ctx, "key")
	}
	assert.False(t, limiter.Allow(ctx, "key").Allowed)

	now = now.Add(61 * time.Second)
	assert.True(t, limiter.Allow(ctx, "key").Allowed)
}

func TestLimiterKeysIndependent(t *testing.T) {
	store := NewMemoryStore()
	limiter := NewLimiter(store, 1, time.Minute, zap.NewNop())
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "a").Allowed)
	assert.False(t, limiter.Allow(ctx, "a").Allowed)
	assert.True(t, limiter.Allow(ctx, "b").Allowed)
}

func TestLimiterFailsOpenOnStoreError(t *testing.T) {
	limiter := NewLimiter(failingStore{}, 1, time.Minute, zap.NewNop())
	decision := limiter.Allow(context.Background(), "key")
	assert.True(t, decision.Allowed)
}
