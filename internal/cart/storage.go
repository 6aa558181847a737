package cart

import (
	"context"
	"sync"
	"time"

	pkgredis "github.com/arjunpatwa/qrmenu-backend/pkg/redis"
)

// ErrSnapshotNotFound is returned by storage when no snapshot exists for a session.
var ErrSnapshotNotFound = pkgredis.Nil

// Storage persists raw cart snapshots keyed by session id.
type Storage interface {
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Set(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error
	Del(ctx context.Context, sessionID string) error
}

// RedisStorage stores snapshots in Redis under the cart namespace.
type RedisStorage struct {
	client *pkgredis.Client
}

// NewRedisStorage wraps the shared Redis client.
func NewRedisStorage(client *pkgredis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (s *RedisStorage) Get(ctx context.Context, sessionID string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.client.CartSnapshotKey(sessionID))
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *RedisStorage) Set(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.client.CartSnapshotKey(sessionID), payload, ttl)
}

func (s *RedisStorage) Del(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.client.CartSnapshotKey(sessionID))
}

// MemoryStorage is a map-backed Storage for tests and local development.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: map[string][]byte{}}
}

func (s *MemoryStorage) Get(_ context.Context, sessionID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.entries[sessionID]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	copied := make([]byte, len(payload))
	copy(copied, payload)
	return copied, nil
}

func (s *MemoryStorage) Set(_ context.Context, sessionID string, payload []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(payload))
	copy(copied, payload)
	s.entries[sessionID] = copied
	return nil
}

func (s *MemoryStorage) Del(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
