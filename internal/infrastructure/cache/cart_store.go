package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// CartLine is one line of a saved storefront cart
type CartLine struct {
	ProductID string          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
}

// Cart is a shopper's saved cart. The browser remains the source of
// truth; the server copy exists so a session can resume on another
// device or after a reload.
type Cart struct {
	Key       string     `json:"key"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartStore persists storefront carts with an abandonment TTL
type CartStore interface {
	// Get returns the cart saved under a key, if any
	Get(ctx context.Context, key string) (*Cart, bool, error)

	// Put saves a cart, resetting its TTL
	Put(ctx context.Context, cart *Cart, ttl time.Duration) error

	// Delete removes a cart, typically after a successful checkout
	Delete(ctx context.Context, key string) error
}

// RedisCartStore implements CartStore on Redis
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCartStore wraps an existing Redis client
func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{
		client:    client,
		keyPrefix: "storefront:cart:",
	}
}

func (s *RedisCartStore) Get(ctx context.Context, key string) (*Cart, bool, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, false, fmt.Errorf("decoding cart: %w", err)
	}
	return &cart, true, nil
}

func (s *RedisCartStore) Put(ctx context.Context, cart *Cart, ttl time.Duration) error {
	cart.UpdatedAt = time.Now()
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+cart.Key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("deleting cart: %w", err)
	}
	return nil
}

var _ CartStore = (*RedisCartStore)(nil)

type cartEntry struct {
	cart   Cart
	expiry time.Time
}

// InMemoryCartStore is a single-process implementation for tests and
// local development without Redis.
type InMemoryCartStore struct {
	mu      sync.RWMutex
	entries map[string]cartEntry
}

// NewInMemoryCartStore creates an empty in-memory cart store
func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{
		entries: make(map[string]cartEntry),
	}
}

func (s *InMemoryCartStore) Get(_ context.Context, key string) (*Cart, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiry) {
		return nil, false, nil
	}
	cart := entry.cart
	cart.Lines = append([]CartLine(nil), entry.cart.Lines...)
	return &cart, true, nil
}

func (s *InMemoryCartStore) Put(_ context.Context, cart *Cart, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart.UpdatedAt = time.Now()
	stored := *cart
	stored.Lines = append([]CartLine(nil), cart.Lines...)
	s.entries[cart.Key] = cartEntry{cart: stored, expiry: time.Now().Add(ttl)}
	return nil
}

func (s *InMemoryCartStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

var _ CartStore = (*InMemoryCartStore)(nil)
