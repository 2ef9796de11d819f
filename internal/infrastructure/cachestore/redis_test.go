package cachestore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numberlookup/internal/domain/entity"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	now := time.Now()
	entry := entity.CacheEntry{
		Key:       "phone_us:+17182222222",
		Payload:   []byte(`{"valid":true}`),
		Source:    "live",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	require.NoError(t, store.Put(ctx, entry))

	got, ok, err := store.Get(ctx, entry.Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.Payload, got.Payload)
	assert.Equal(t, "live", got.Source)
	assert.Equal(t, int64(0), got.HitCount)
	assert.Equal(t, entry.ExpiresAt.Unix(), got.ExpiresAt.Unix())
}

func TestRedisStoreMissing(t *testing.T) {
	store, _ := newRedisStore(t)

	_, ok, err := store.Get(context.Background(), "phone_us:+10000000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	now := time.Now()
	entry := entity.CacheEntry{
		Key:       "phone_us:+17182222222",
		Payload:   []byte(`{}`),
		Source:    "live",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Minute),
	}
	require.NoError(t, store.Put(ctx, entry))

	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Get(ctx, entry.Key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreIncrementHit(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	now := time.Now()
	entry := entity.CacheEntry{
		Key:       "phone_us:+17182222222",
		Payload:   []byte(`{}`),
		Source:    "live",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, store.Put(ctx, entry))

	require.NoError(t, store.IncrementHit(ctx, entry.Key))
	require.NoError(t, store.IncrementHit(ctx, entry.Key))

	got, ok, err := store.Get(ctx, entry.Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.HitCount)
}

func TestRedisStoreIncrementHitMissingKey(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.IncrementHit(ctx, "phone_us:+10000000000"))

	// The accidental hash must not linger.
	_, ok, err := store.Get(ctx, "phone_us:+10000000000")
	require.NoError(t, err)
	assert.False(t, ok)
}
