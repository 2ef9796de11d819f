package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numberlookup/internal/domain/entity"
	"numberlookup/internal/domain/service/respcache"
)

type countingStore struct {
	sweeps atomic.Int64
}

func (s *countingStore) Get(_ context.Context, _ string) (entity.CacheEntry, bool, error) {
	return entity.CacheEntry{}, false, nil
}

func (s *countingStore) Put(_ context.Context, _ entity.CacheEntry) error { return nil }

func (s *countingStore) IncrementHit(_ context.Context, _ string) error { return nil }

func (s *countingStore) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	s.sweeps.Add(1)
	return 1, nil
}

func TestReclaimerSweepsUntilCancelled(t *testing.T) {
	store := &countingStore{}
	reclaimer := NewReclaimer(respcache.New(store)).WithInterval(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- reclaimer.Run(ctx) }()

	require.Eventually(t, func() bool {
		return store.sweeps.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("reclaimer did not stop")
	}
}

func TestReclaimerIntervalGuard(t *testing.T) {
	store := &countingStore{}
	reclaimer := NewReclaimer(respcache.New(store)).WithInterval(0)

	assert.Equal(t, defaultSweepInterval, reclaimer.interval)
}
