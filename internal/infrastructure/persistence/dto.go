package persistence

import (
	"time"

	"numberlookup/internal/domain/entity"
)

// cacheEntrySchema маппит строку таблицы api_response_cache.
type cacheEntrySchema struct {
	CacheKey  string    `db:"cache_key"`
	Payload   []byte    `db:"response_data"`
	APISource string    `db:"api_source"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
	HitCount  int64     `db:"hit_count"`
}

func (s *cacheEntrySchema) toDomain() entity.CacheEntry {
	return entity.CacheEntry{
		Key:       s.CacheKey,
		Payload:   s.Payload,
		Source:    s.APISource,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		HitCount:  s.HitCount,
	}
}

// searchLogSchema маппит строку таблицы search_logs.
type searchLogSchema struct {
	ID               int64     `db:"id"`
	PhoneNumber      string    `db:"phone_number"`
	NormalizedNumber string    `db:"normalized_number"`
	IPAddress        string    `db:"ip_address"`
	UserAgent        string    `db:"user_agent"`
	FoundResults     bool      `db:"found_results"`
	APISource        string    `db:"api_source"`
	CacheHit         bool      `db:"cache_hit"`
	CreatedAt        time.Time `db:"created_at"`
}

func (s *searchLogSchema) toDomain() entity.SearchLog {
	return entity.SearchLog{
		ID:               s.ID,
		PhoneNumber:      s.PhoneNumber,
		NormalizedNumber: s.NormalizedNumber,
		IPAddress:        s.IPAddress,
		UserAgent:        s.UserAgent,
		FoundResults:     s.FoundResults,
		APISource:        s.APISource,
		CacheHit:         s.CacheHit,
		CreatedAt:        s.CreatedAt,
	}
}
