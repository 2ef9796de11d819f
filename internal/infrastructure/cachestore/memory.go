// Package cachestore provides the response-cache stores: an in-process store
// on go-cache and a redis store for deployments where instances must share
// answers.
package cachestore

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"numberlookup/internal/domain/entity"
)

const janitorInterval = 10 * time.Minute

type memoryItem struct {
	entry entity.CacheEntry
	hits  atomic.Int64
}

// MemoryStore keeps entries in a go-cache instance whose janitor doubles as
// the physical reclamation pass.
type MemoryStore struct {
	items *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: gocache.New(gocache.NoExpiration, janitorInterval),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (entity.CacheEntry, bool, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return entity.CacheEntry{}, false, nil
	}

	item := v.(*memoryItem)

	entry := item.entry
	entry.HitCount = item.hits.Load()

	return entry, true, nil
}

func (s *MemoryStore) Put(_ context.Context, entry entity.CacheEntry) error {
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		// Dead on arrival; storing it would sidestep go-cache expiry.
		s.items.Delete(entry.Key)
		return nil
	}

	s.items.Set(entry.Key, &memoryItem{entry: entry}, ttl)

	return nil
}

func (s *MemoryStore) IncrementHit(_ context.Context, key string) error {
	v, ok := s.items.Get(key)
	if !ok {
		return nil
	}

	v.(*memoryItem).hits.Add(1)

	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	before := s.items.ItemCount()
	s.items.DeleteExpired()

	return int64(before - s.items.ItemCount()), nil
}
