// Package respcache is the single source of truth for "have we already
// answered this". Entries live behind an injected Store so tests run against
// an in-memory fake and deployments can pick memory, redis or postgres.
package respcache

import (
	"context"
	"time"

	"numberlookup/internal/domain/entity"
	"numberlookup/pkg/contextx"
	"numberlookup/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Store is the persistence port for cache entries. Implementations must treat
// Put as a full overwrite and IncrementHit as a no-op for missing keys.
type Store interface {
	// Get returns the entry and true when a physical record exists,
	// expired or not. Logical expiry is the Cache's concern.
	Get(ctx context.Context, key string) (entity.CacheEntry, bool, error)
	Put(ctx context.Context, entry entity.CacheEntry) error
	IncrementHit(ctx context.Context, key string) error
	// DeleteExpired removes entries whose ExpiresAt is before now and
	// returns how many were reclaimed. Called by the maintenance sweep,
	// never on the request path.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Cache struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Cache {
	return &Cache{
		store: store,
		now:   time.Now,
	}
}

func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Get returns the entry for key, or ok=false when it is missing or expired.
// Store failures degrade to a miss: a cache outage must never fail a lookup.
func (c *Cache) Get(ctx context.Context, key string) (entity.CacheEntry, bool) {
	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		logger(ctx).Warn("cache read failed, treating as miss",
			logx.Error(err),
		)
		return entity.CacheEntry{}, false
	}

	if !ok || entry.Expired(c.now()) {
		return entity.CacheEntry{}, false
	}

	return entry, true
}

// Put stores a fresh entry, overwriting any prior one: new created-at, new
// expires-at, hit count reset to zero. Write failures are logged and
// swallowed so the response is still served.
func (c *Cache) Put(ctx context.Context, key string, payload []byte, source string, ttl time.Duration) {
	now := c.now()

	entry := entity.CacheEntry{
		Key:       key,
		Payload:   payload,
		Source:    source,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		HitCount:  0,
	}

	if err := c.store.Put(ctx, entry); err != nil {
		logger(ctx).Warn("cache write failed",
			logx.Error(err),
		)
	}
}

// RecordHit bumps the hit counter for observability. Best effort: misses and
// store failures are ignored.
func (c *Cache) RecordHit(ctx context.Context, key string) {
	if err := c.store.IncrementHit(ctx, key); err != nil {
		logger(ctx).Warn("cache hit accounting failed",
			logx.Error(err),
		)
	}
}

// Sweep physically removes expired entries.
func (c *Cache) Sweep(ctx context.Context) (int64, error) {
	return c.store.DeleteExpired(ctx, c.now())
}
