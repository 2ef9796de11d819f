package cachestore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"numberlookup/internal/domain"
	"numberlookup/internal/domain/entity"
	"numberlookup/pkg/errcodes"
)

const (
	fieldPayload   = "payload"
	fieldSource    = "source"
	fieldCreatedAt = "created_at"
	fieldExpiresAt = "expires_at"
	fieldHits      = "hits"
)

// RedisStore keeps each entry in a hash so the hit counter can be bumped
// without rewriting the payload. Physical expiry rides on the key TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (entity.CacheEntry, bool, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return entity.CacheEntry{}, false, domain.WrapError(err, errcodes.InternalServerError, "redis cache get")
	}

	if len(fields) == 0 {
		return entity.CacheEntry{}, false, nil
	}

	entry := entity.CacheEntry{
		Key:       key,
		Payload:   []byte(fields[fieldPayload]),
		Source:    fields[fieldSource],
		CreatedAt: unixTime(fields[fieldCreatedAt]),
		ExpiresAt: unixTime(fields[fieldExpiresAt]),
	}
	entry.HitCount, _ = strconv.ParseInt(fields[fieldHits], 10, 64)

	return entry, true, nil
}

func (s *RedisStore) Put(ctx context.Context, entry entity.CacheEntry) error {
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		if err := s.client.Del(ctx, entry.Key).Err(); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "redis cache delete")
		}

		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, entry.Key, map[string]any{
		fieldPayload:   entry.Payload,
		fieldSource:    entry.Source,
		fieldCreatedAt: entry.CreatedAt.Unix(),
		fieldExpiresAt: entry.ExpiresAt.Unix(),
		fieldHits:      entry.HitCount,
	})
	pipe.Expire(ctx, entry.Key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "redis cache put")
	}

	return nil
}

func (s *RedisStore) IncrementHit(ctx context.Context, key string) error {
	if err := s.client.HIncrBy(ctx, key, fieldHits, 1).Err(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "redis cache hit")
	}

	// HIncrBy creates the hash when the entry expired between the caller's
	// read and this bump. A key without a TTL is such a stray; drop it.
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "redis cache hit")
	}

	if ttl < 0 {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "redis cache hit")
		}
	}

	return nil
}

// DeleteExpired is a no-op for redis, key TTLs reclaim entries on their own.
func (s *RedisStore) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func unixTime(raw string) time.Time {
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.Unix(sec, 0)
}
