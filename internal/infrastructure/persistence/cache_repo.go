package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"numberlookup/internal/domain"
	"numberlookup/internal/domain/entity"
	"numberlookup/pkg/errcodes"
)

// CacheRepository хранит закешированные ответы в Postgres.
type CacheRepository struct {
	db *sqlx.DB
}

func NewCacheRepository(db *sqlx.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

func (r *CacheRepository) Get(ctx context.Context, key string) (entity.CacheEntry, bool, error) {
	query := `
		SELECT cache_key, response_data, api_source, created_at, expires_at, hit_count
		FROM api_response_cache
		WHERE cache_key = $1`

	var schema cacheEntrySchema
	if err := r.db.GetContext(ctx, &schema, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.CacheEntry{}, false, nil
		}
		return entity.CacheEntry{}, false, domain.WrapError(err, errcodes.InternalServerError, "failed to get cache entry")
	}

	return schema.toDomain(), true, nil
}

// Put перезаписывает запись и сбрасывает счётчик попаданий.
func (r *CacheRepository) Put(ctx context.Context, entry entity.CacheEntry) error {
	query := `
		INSERT INTO api_response_cache (cache_key, response_data, api_source, created_at, expires_at, hit_count)
		VALUES (:cache_key, :response_data, :api_source, :created_at, :expires_at, :hit_count)
		ON CONFLICT (cache_key) DO UPDATE SET
			response_data = EXCLUDED.response_data,
			api_source = EXCLUDED.api_source,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at,
			hit_count = EXCLUDED.hit_count`

	params := map[string]any{
		"cache_key":     entry.Key,
		"response_data": entry.Payload,
		"api_source":    entry.Source,
		"created_at":    entry.CreatedAt,
		"expires_at":    entry.ExpiresAt,
		"hit_count":     entry.HitCount,
	}

	if _, err := r.db.NamedExecContext(ctx, query, params); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert cache entry")
	}

	return nil
}

func (r *CacheRepository) IncrementHit(ctx context.Context, key string) error {
	query := `UPDATE api_response_cache SET hit_count = hit_count + 1 WHERE cache_key = $1`

	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to bump hit count")
	}

	return nil
}

// DeleteExpired удаляет протухшие записи и возвращает их количество.
func (r *CacheRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM api_response_cache WHERE expires_at < $1`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to delete expired entries")
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	return removed, nil
}
