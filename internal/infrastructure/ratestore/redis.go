package ratestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"numberlookup/internal/domain/service/ratelimit"
)

const (
	hourWindow = time.Hour
	dayWindow  = 24 * time.Hour
)

// RedisStore implements the window counters as INCR'd keys whose TTL starts
// at the first request of the window — the lazy-rollover semantics fall out
// of key expiry. The INCR-then-compare order keeps check and increment atomic
// without a lock: only the first PerHour increments of a window see a value
// within the limit. Denied requests inflate the counter past the ceiling,
// which cannot change any admission outcome inside a fixed-TTL window.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Acquire(ctx context.Context, ip string, _ time.Time, limits ratelimit.Limits) (ratelimit.Decision, error) {
	blocked, err := s.client.Exists(ctx, blockKey(ip)).Result()
	if err != nil {
		return ratelimit.Allowed, fmt.Errorf("block check for %s: %w", ip, err)
	}

	if blocked > 0 {
		return ratelimit.Blocked, nil
	}

	p := s.client.Pipeline()

	hour := p.Incr(ctx, hourKey(ip))
	p.ExpireNX(ctx, hourKey(ip), hourWindow)
	day := p.Incr(ctx, dayKey(ip))
	p.ExpireNX(ctx, dayKey(ip), dayWindow)

	if _, err := p.Exec(ctx); err != nil {
		return ratelimit.Allowed, fmt.Errorf("counter pipeline for %s: %w", ip, err)
	}

	if hour.Val() > int64(limits.PerHour) || day.Val() > int64(limits.PerDay) {
		if limits.BlockCooldown > 0 {
			if err := s.client.SetNX(ctx, blockKey(ip), 1, limits.BlockCooldown).Err(); err != nil {
				return ratelimit.RateLimited, fmt.Errorf("set block for %s: %w", ip, err)
			}
		}

		return ratelimit.RateLimited, nil
	}

	return ratelimit.Allowed, nil
}

func (s *RedisStore) Peek(ctx context.Context, ip string, _ time.Time, limits ratelimit.Limits) (ratelimit.Decision, error) {
	blocked, err := s.client.Exists(ctx, blockKey(ip)).Result()
	if err != nil {
		return ratelimit.Allowed, fmt.Errorf("block check for %s: %w", ip, err)
	}

	if blocked > 0 {
		return ratelimit.Blocked, nil
	}

	p := s.client.Pipeline()

	hour := p.Get(ctx, hourKey(ip))
	day := p.Get(ctx, dayKey(ip))

	if _, err := p.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return ratelimit.Allowed, fmt.Errorf("counter read for %s: %w", ip, err)
	}

	hourCount, _ := hour.Int64()
	dayCount, _ := day.Int64()

	if hourCount >= int64(limits.PerHour) || dayCount >= int64(limits.PerDay) {
		return ratelimit.RateLimited, nil
	}

	return ratelimit.Allowed, nil
}

func hourKey(ip string) string {
	return "ratelimit:" + ip + ":hour"
}

func dayKey(ip string) string {
	return "ratelimit:" + ip + ":day"
}

func blockKey(ip string) string {
	return "ratelimit:" + ip + ":block"
}
