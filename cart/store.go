package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store persists carts between requests. The Redis implementation is
// used in production; the memory one backs tests and local runs without
// a Redis instance.
type Store interface {
	Get(ctx context.Context, sessionID string, portalID uint) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, sessionID string, portalID uint) error
}

func cartKey(sessionID string, portalID uint) string {
	return fmt.Sprintf("cart:%d:%s", portalID, sessionID)
}

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Get rehydrates a cart. A missing key yields a fresh empty cart, not
// an error.
func (s *RedisStore) Get(ctx context.Context, sessionID string, portalID uint) (*Cart, error) {
	val, err := s.rdb.Get(ctx, cartKey(sessionID, portalID)).Result()
	if err == redis.Nil {
		return New(sessionID, portalID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal([]byte(val), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &c, nil
}

func (s *RedisStore) Save(ctx context.Context, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	return s.rdb.Set(ctx, cartKey(c.SessionID, c.PortalID), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string, portalID uint) error {
	return s.rdb.Del(ctx, cartKey(sessionID, portalID)).Err()
}

// MemoryStore keeps carts in-process.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*Cart)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string, portalID uint) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.carts[cartKey(sessionID, portalID)]; ok {
		copied := *c
		copied.Lines = append([]Line{}, c.Lines...)
		return &copied, nil
	}
	return New(sessionID, portalID), nil
}

func (s *MemoryStore) Save(ctx context.Context, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *c
	copied.Lines = append([]Line{}, c.Lines...)
	s.carts[cartKey(c.SessionID, c.PortalID)] = &copied
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string, portalID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartKey(sessionID, portalID))
	return nil
}
