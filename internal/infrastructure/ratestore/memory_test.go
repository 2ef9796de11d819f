package ratestore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"numberlookup/internal/domain/service/ratelimit"
	"numberlookup/internal/infrastructure/ratestore"
)

func TestMemoryStoreWindowRollover(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := ratestore.NewMemoryStore()
	limits := ratelimit.Limits{PerHour: 2, PerDay: 100}
	start := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	_, ok := store.State("203.0.113.7")
	rq.False(ok, "state is created lazily")

	for i := 0; i < 2; i++ {
		decision, err := store.Acquire(ctx, "203.0.113.7", start, limits)
		rq.NoError(err)
		rq.Equal(ratelimit.Allowed, decision)
	}

	state, ok := store.State("203.0.113.7")
	rq.True(ok)
	rq.Equal(2, state.HourCount)
	rq.Equal(2, state.DayCount)
	rq.Equal(start, state.HourStart)

	// Crossing the hour boundary zeroes the hour counter only.
	later := start.Add(time.Hour + time.Minute)

	decision, err := store.Acquire(ctx, "203.0.113.7", later, limits)
	rq.NoError(err)
	rq.Equal(ratelimit.Allowed, decision)

	state, _ = store.State("203.0.113.7")
	rq.Equal(1, state.HourCount)
	rq.Equal(later, state.HourStart)
	rq.Equal(3, state.DayCount)
	rq.Equal(start, state.DayStart)
}
