// Package ratelimit gates abusive submission bursts with a fixed-window
// counter per client key. The counter store is injectable so the default
// per-process memory store can be swapped for a shared Redis store without
// changing call sites.
package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CounterStore increments the counter for key within the current fixed
// window and reports the resulting count plus time remaining in the window.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, remaining time.Duration, err error)
}

// Decision is the outcome of a rate-limit check. RetryAfter is the hint for
// the Retry-After header when blocked.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter enforces at most limit operations per window per key.
type Limiter struct {
	store  CounterStore
	limit  int64
	window time.Duration
	logger *zap.Logger
}

// NewLimiter creates a limiter over the given counter store.
func NewLimiter(store CounterStore, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limiter{store: store, limit: int64(limit), window: window, logger: logger}
}

// Allow reports whether the operation for key may proceed. A counter-store
// failure allows the operation: the limiter fails open rather than blocking
// genuine submissions on infrastructure trouble.
func (l *Limiter) Allow(ctx context.Context, key string) Decision {
	count, remaining, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		l.logger.Warn("rate-limit counter unavailable, allowing", zap.String("key", key), zap.Error(err))
		return Decision{Allowed: true}
	}
	if count > l.limit {
		return Decision{Allowed: false, RetryAfter: remaining}
	}
	return Decision{Allowed: true}
}
