package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowCounter struct {
	count       int64
	windowStart time.Time
}

// MemoryStore is the default in-process counter store. Counters live for the
// process lifetime and are not shared across instances; each server enforces
// the limit independently.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
	now      func() time.Time
}

// NewMemoryStore creates an in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counters: make(map[string]*windowCounter),
		now:      time.Now,
	}
}

// Incr implements CounterStore with a fixed window that resets once the
// window has fully elapsed since its first hit.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	counter, ok := s.counters[key]
	if !ok || now.Sub(counter.windowStart) >= window {
		counter = &windowCounter{windowStart: now}
		s.counters[key] = counter
	}
	counter.count++
	remaining := window - now.Sub(counter.windowStart)
	return counter.count, remaining, nil
}
