package wishlist

import (
	"context"
	"fmt"
	"sync"

	"tram-kitchen/internal/cache"

	"github.com/redis/go-redis/v9"
)

// Store persists one JSON document per session. Get returns nil data for an
// absent key.
type Store interface {
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Set(ctx context.Context, sessionID string, data []byte) error
}

// redisStore keeps wishlist documents in Redis so they survive restarts.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed wishlist store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(cache.KeyWishlist, sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read wishlist: %w", err)
	}
	return data, nil
}

func (s *redisStore) Set(ctx context.Context, sessionID string, data []byte) error {
	if err := s.client.Set(ctx, fmt.Sprintf(cache.KeyWishlist, sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write wishlist: %w", err)
	}
	return nil
}

// memoryStore is an in-process Store for tests and single-node dev setups.
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates a map-backed wishlist store.
func NewMemoryStore() Store {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, sessionID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[sessionID], nil
}

func (s *memoryStore) Set(_ context.Context, sessionID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.data[sessionID] = buf
	return nil
}
