package ratestore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"numberlookup/internal/domain/service/ratelimit"
	"numberlookup/internal/infrastructure/ratestore"
)

func newRedisStore(t *testing.T) (*ratestore.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return ratestore.NewRedisStore(client), server
}

func TestRedisStoreAcquire(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store, server := newRedisStore(t)

	limits := ratelimit.Limits{PerHour: 3, PerDay: 100}
	now := time.Now()

	for i := 0; i < 3; i++ {
		decision, err := store.Acquire(ctx, "203.0.113.7", now, limits)
		rq.NoError(err)
		rq.Equal(ratelimit.Allowed, decision, "request %d", i+1)
	}

	decision, err := store.Acquire(ctx, "203.0.113.7", now, limits)
	rq.NoError(err)
	rq.Equal(ratelimit.RateLimited, decision)

	// Window expiry resets the counter.
	server.FastForward(time.Hour + time.Second)

	decision, err = store.Acquire(ctx, "203.0.113.7", now, limits)
	rq.NoError(err)
	rq.Equal(ratelimit.Allowed, decision)
}

func TestRedisStoreDayCeiling(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store, server := newRedisStore(t)

	limits := ratelimit.Limits{PerHour: 10, PerDay: 12}
	now := time.Now()

	for hour := 0; hour < 2; hour++ {
		for i := 0; i < 6; i++ {
			decision, err := store.Acquire(ctx, "203.0.113.7", now, limits)
			rq.NoError(err)
			rq.Equal(ratelimit.Allowed, decision)
		}

		server.FastForward(time.Hour + time.Second)
	}

	decision, err := store.Acquire(ctx, "203.0.113.7", now, limits)
	rq.NoError(err)
	rq.Equal(ratelimit.RateLimited, decision, "day ceiling survives hour expiry")
}

func TestRedisStoreBlockEscalation(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store, server := newRedisStore(t)

	limits := ratelimit.Limits{PerHour: 1, PerDay: 100, BlockCooldown: 10 * time.Minute}
	now := time.Now()

	decision, err := store.Acquire(ctx, "203.0.113.7", now, limits)
	rq.NoError(err)
	rq.Equal(ratelimit.Allowed, decision)

	decision, err = store.Acquire(ctx, "203.0.113.7", now, limits)
	rq.NoError(err)
	rq.Equal(ratelimit.RateLimited, decision)

	decision, err = store.Acquire(ctx, "203.0.113.7", now, limits)
	rq.NoError(err)
	rq.Equal(ratelimit.Blocked, decision)

	server.FastForward(11 * time.Minute)

	// Cooldown over; hour counter still holds.
	decision, err = store.Acquire(ctx, "203.0.113.7", now, limits)
	rq.NoError(err)
	rq.Equal(ratelimit.RateLimited, decision)
}

func TestRedisStorePeek(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store, _ := newRedisStore(t)

	limits := ratelimit.Limits{PerHour: 1, PerDay: 100}
	now := time.Now()

	for i := 0; i < 5; i++ {
		decision, err := store.Peek(ctx, "203.0.113.7", now, limits)
		rq.NoError(err)
		rq.Equal(ratelimit.Allowed, decision)
	}

	_, err := store.Acquire(ctx, "203.0.113.7", now, limits)
	rq.NoError(err)

	decision, err := store.Peek(ctx, "203.0.113.7", now, limits)
	rq.NoError(err)
	rq.Equal(ratelimit.RateLimited, decision)
}
