package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrResetTokenInvalid indicates an unknown, used, or expired reset token
var ErrResetTokenInvalid = errors.New("invalid or expired reset token")

// ResetTokenStore issues single-use password reset tokens
type ResetTokenStore interface {
	// Issue creates a token bound to a user id with a TTL
	Issue(ctx context.Context, userID string, ttl time.Duration) (string, error)

	// Consume resolves a token to its user id and invalidates it.
	// Returns ErrResetTokenInvalid for unknown or expired tokens.
	Consume(ctx context.Context, token string) (string, error)
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// RedisResetTokenStore implements ResetTokenStore on Redis
type RedisResetTokenStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisResetTokenStore wraps an existing Redis client
func NewRedisResetTokenStore(client *redis.Client) *RedisResetTokenStore {
	return &RedisResetTokenStore{
		client:    client,
		keyPrefix: "password:reset:",
	}
}

func (s *RedisResetTokenStore) Issue(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token, err := newResetToken()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.keyPrefix+token, userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("storing reset token: %w", err)
	}
	return token, nil
}

func (s *RedisResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	key := s.keyPrefix + token
	userID, err := s.client.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrResetTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("consuming reset token: %w", err)
	}
	return userID, nil
}

var _ ResetTokenStore = (*RedisResetTokenStore)(nil)

type resetEntry struct {
	userID string
	expiry time.Time
}

// InMemoryResetTokenStore is a single-process implementation for tests
// and local development without Redis.
type InMemoryResetTokenStore struct {
	mu      sync.Mutex
	entries map[string]resetEntry
}

// NewInMemoryResetTokenStore creates an empty in-memory store
func NewInMemoryResetTokenStore() *InMemoryResetTokenStore {
	return &InMemoryResetTokenStore{
		entries: make(map[string]resetEntry),
	}
}

func (s *InMemoryResetTokenStore) Issue(_ context.Context, userID string, ttl time.Duration) (string, error) {
	token, err := newResetToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = resetEntry{userID: userID, expiry: time.Now().Add(ttl)}
	return token, nil
}

func (s *InMemoryResetTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return "", ErrResetTokenInvalid
	}
	delete(s.entries, token)
	if time.Now().After(entry.expiry) {
		return "", ErrResetTokenInvalid
	}
	return entry.userID, nil
}

var _ ResetTokenStore = (*InMemoryResetTokenStore)(nil)
