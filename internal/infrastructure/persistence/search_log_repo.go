package persistence

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"numberlookup/internal/domain"
	"numberlookup/internal/domain/entity"
	"numberlookup/pkg/errcodes"
)

// SearchLogRepository пишет журнал поисковых запросов и переходов по
// партнёрским ссылкам.
type SearchLogRepository struct {
	db *sqlx.DB
}

func NewSearchLogRepository(db *sqlx.DB) *SearchLogRepository {
	return &SearchLogRepository{db: db}
}

func (r *SearchLogRepository) Create(ctx context.Context, log *entity.SearchLog) error {
	query := `
		INSERT INTO search_logs (phone_number, normalized_number, ip_address, user_agent,
			found_results, api_source, cache_hit, created_at)
		VALUES (:phone_number, :normalized_number, :ip_address, :user_agent,
			:found_results, :api_source, :cache_hit, :created_at)`

	createdAt := log.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	params := map[string]any{
		"phone_number":      log.PhoneNumber,
		"normalized_number": log.NormalizedNumber,
		"ip_address":        log.IPAddress,
		"user_agent":        log.UserAgent,
		"found_results":     log.FoundResults,
		"api_source":        log.APISource,
		"cache_hit":         log.CacheHit,
		"created_at":        createdAt,
	}

	if _, err := r.db.NamedExecContext(ctx, query, params); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert search log")
	}

	return nil
}

// ListRecent возвращает последние записи журнала, новые первыми.
func (r *SearchLogRepository) ListRecent(ctx context.Context, limit int) ([]entity.SearchLog, error) {
	query := `
		SELECT id, phone_number, normalized_number, ip_address, user_agent,
			found_results, api_source, cache_hit, created_at
		FROM search_logs
		ORDER BY created_at DESC
		LIMIT $1`

	var schemas []searchLogSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list search logs")
	}

	logs := make([]entity.SearchLog, 0, len(schemas))
	for _, s := range schemas {
		logs = append(logs, s.toDomain())
	}

	return logs, nil
}

// CountSince возвращает число запросов с данного адреса начиная с момента since.
func (r *SearchLogRepository) CountSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM search_logs WHERE ip_address = $1 AND created_at >= $2`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, ip, since); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count search logs")
	}

	return count, nil
}

// CreateAffiliateClick фиксирует переход по партнёрской ссылке.
func (r *SearchLogRepository) CreateAffiliateClick(ctx context.Context, click *entity.AffiliateClick) error {
	query := `
		INSERT INTO affiliate_clicks (phone_number, affiliate_name, click_id, ip_address, user_agent, created_at)
		VALUES (:phone_number, :affiliate_name, :click_id, :ip_address, :user_agent, :created_at)`

	createdAt := click.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	params := map[string]any{
		"phone_number":   click.PhoneNumber,
		"affiliate_name": click.AffiliateName,
		"click_id":       click.ClickID,
		"ip_address":     click.IPAddress,
		"user_agent":     click.UserAgent,
		"created_at":     createdAt,
	}

	if _, err := r.db.NamedExecContext(ctx, query, params); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert affiliate click")
	}

	return nil
}
