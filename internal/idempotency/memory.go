package idempotency

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps idempotency records in process memory. Suitable for
// single-instance deployments and tests; records do not survive restarts.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	return v.(string), nil
}

func (s *MemoryStore) Put(_ context.Context, key, token string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	// Add refuses live entries, so a concurrent writer's token survives.
	if err := s.cache.Add(key, token, ttl); err != nil {
		if v, ok := s.cache.Get(key); ok {
			return v.(string), nil
		}
	}
	return token, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
