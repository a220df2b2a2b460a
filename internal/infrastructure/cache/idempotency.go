package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore deduplicates checkout submissions. A browser retry or
// double-click carries the same idempotency key; the first submission
// records its order number under the key, and replays read it back.
type IdempotencyStore interface {
	// Get returns the order number recorded under a key, if any
	Get(ctx context.Context, key string) (string, bool, error)

	// Put atomically claims a key with a TTL. Returns false when
	// another request already holds it.
	Put(ctx context.Context, key, orderNumber string, ttl time.Duration) (bool, error)

	// Fulfill overwrites a held key with the final order number,
	// resetting its TTL. Only the claim winner calls this.
	Fulfill(ctx context.Context, key, orderNumber string, ttl time.Duration) error

	// Release drops a key, allowing a retry after a failed submission
	Release(ctx context.Context, key string) error
}

// RedisIdempotencyStore implements IdempotencyStore on Redis. Suitable for
// multi-instance deployments that share checkout state.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisIdempotencyStore wraps an existing Redis client
func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: "checkout:idempotency:",
	}
}

// Get returns the order number recorded under a key
func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading idempotency key: %w", err)
	}
	return val, true, nil
}

// Put claims a key via SETNX so exactly one submission wins
func (s *RedisIdempotencyStore) Put(ctx context.Context, key, orderNumber string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, orderNumber, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("recording idempotency key: %w", err)
	}
	return ok, nil
}

// Fulfill overwrites a held key with the final order number
func (s *RedisIdempotencyStore) Fulfill(ctx context.Context, key, orderNumber string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, orderNumber, ttl).Err(); err != nil {
		return fmt.Errorf("fulfilling idempotency key: %w", err)
	}
	return nil
}

// Release drops a key
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("releasing idempotency key: %w", err)
	}
	return nil
}

var _ IdempotencyStore = (*RedisIdempotencyStore)(nil)

type idempotencyEntry struct {
	orderNumber string
	expiry      time.Time
}

// InMemoryIdempotencyStore is a single-process implementation for tests
// and local development without Redis.
type InMemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
}

// NewInMemoryIdempotencyStore creates an empty in-memory store
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{
		entries: make(map[string]idempotencyEntry),
	}
}

func (s *InMemoryIdempotencyStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if time.Now().After(entry.expiry) {
		delete(s.entries, key)
		return "", false, nil
	}
	return entry.orderNumber, true, nil
}

func (s *InMemoryIdempotencyStore) Put(_ context.Context, key, orderNumber string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok && time.Now().Before(entry.expiry) {
		return false, nil
	}
	s.entries[key] = idempotencyEntry{orderNumber: orderNumber, expiry: time.Now().Add(ttl)}
	return true, nil
}

func (s *InMemoryIdempotencyStore) Fulfill(_ context.Context, key, orderNumber string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = idempotencyEntry{orderNumber: orderNumber, expiry: time.Now().Add(ttl)}
	return nil
}

func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

var _ IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
