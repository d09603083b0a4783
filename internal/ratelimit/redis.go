package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:submit:"

// RedisStore is a shared counter store so the submission limit holds across
// multiple server instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed counter store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Incr implements CounterStore. The window is anchored by the key's TTL: the
// first hit sets the expiry, later hits read the remaining TTL.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	k := redisKeyPrefix + key
	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return count, window, err
		}
		return count, window, nil
	}
	ttl, err := s.client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		return count, window, err
	}
	return count, ttl, nil
}
