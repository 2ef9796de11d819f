// Package search serves people, address and background searches. There is no
// real data provider behind it: answers are synthesized deterministically
// from the query, cached and journaled exactly like phone lookups.
package search

import (
	"context"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"

	"numberlookup/internal/domain"
	"numberlookup/internal/domain/entity"
	"numberlookup/internal/domain/service/respcache"
	"numberlookup/pkg/contextx"
	"numberlookup/pkg/errcodes"
	"numberlookup/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// SourceMock tags synthesized answers.
const SourceMock = "mock_data"

const sourceCache = "cache"

// LogEmitter is the journaling port, see lookup.LogEmitter.
type LogEmitter interface {
	EmitSearchLog(ctx context.Context, log entity.SearchLog) error
}

type Config struct {
	// TTL is the cache lifetime for synthesized answers.
	TTL          time.Duration
	AffiliateURL string
}

// Meta carries the caller identity for journaling.
type Meta struct {
	IP        string
	UserAgent string
}

type Service struct {
	cache *respcache.Cache
	logs  LogEmitter
	cfg   Config
	now   func() time.Time
}

func New(cache *respcache.Cache, logs LogEmitter, cfg Config) *Service {
	return &Service{
		cache: cache,
		logs:  logs,
		cfg:   cfg,
		now:   time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// People searches by name with optional location. At least one name part is
// required.
func (s *Service) People(ctx context.Context, meta Meta, query entity.PeopleQuery) (entity.PeopleSearchResult, error) {
	if query.FirstName == "" && query.LastName == "" {
		return entity.PeopleSearchResult{}, domain.NewError(errcodes.MissingSearchQuery, "provide at least a first name or last name")
	}

	key := respcache.PeopleKey(query.FirstName, query.LastName, query.City, query.State)

	if cached, ok := cacheLoad[entity.PeopleSearchResult](ctx, s.cache, key); ok {
		cached.Cached = true
		cached.AffiliateURL = s.cfg.AffiliateURL
		s.journal(ctx, meta, query.FullName(), sourceCache, true)

		return cached, nil
	}

	result := s.mockPeople(query)
	s.cacheStore(ctx, key, result)
	s.journal(ctx, meta, query.FullName(), SourceMock, false)

	return result, nil
}

// Address searches property records. Street, city and state are all
// required.
func (s *Service) Address(ctx context.Context, meta Meta, query entity.Address) (entity.AddressSearchResult, error) {
	if query.Street == "" || query.City == "" || query.State == "" {
		return entity.AddressSearchResult{}, domain.NewError(errcodes.MissingSearchQuery, "provide street, city, and state")
	}

	key := respcache.AddressKey(query.Street, query.City, query.State, query.Zip)
	queryText := query.Street + ", " + query.City + ", " + query.State

	if cached, ok := cacheLoad[entity.AddressSearchResult](ctx, s.cache, key); ok {
		cached.Cached = true
		cached.AffiliateURL = s.cfg.AffiliateURL
		s.journal(ctx, meta, queryText, sourceCache, true)

		return cached, nil
	}

	result := s.mockAddress(query)
	s.cacheStore(ctx, key, result)
	s.journal(ctx, meta, queryText, SourceMock, false)

	return result, nil
}

// Background runs a background check. Both name parts are required.
func (s *Service) Background(ctx context.Context, meta Meta, query entity.PeopleQuery) (entity.BackgroundReport, error) {
	if query.FirstName == "" || query.LastName == "" {
		return entity.BackgroundReport{}, domain.NewError(errcodes.MissingSearchQuery, "provide both first name and last name")
	}

	key := respcache.BackgroundKey(query.FirstName, query.LastName, query.City, query.State)

	if cached, ok := cacheLoad[entity.BackgroundReport](ctx, s.cache, key); ok {
		cached.Cached = true
		cached.AffiliateURL = s.cfg.AffiliateURL
		s.journal(ctx, meta, query.FullName(), sourceCache, true)

		return cached, nil
	}

	result := s.mockBackground(query)
	s.cacheStore(ctx, key, result)
	s.journal(ctx, meta, query.FullName(), SourceMock, false)

	return result, nil
}

func cacheLoad[T any](ctx context.Context, cache *respcache.Cache, key string) (T, bool) {
	var result T

	entry, ok := cache.Get(ctx, key)
	if !ok {
		return result, false
	}

	if err := json.Unmarshal(entry.Payload, &result); err != nil {
		logger(ctx).Warn("broken cache payload, regenerating",
			slog.String(logx.FieldCacheKey, entry.Key),
			logx.Error(err),
		)

		return result, false
	}

	cache.RecordHit(ctx, key)

	return result, true
}

func (s *Service) cacheStore(ctx context.Context, key string, result any) {
	payload, err := json.Marshal(result)
	if err != nil {
		logger(ctx).Warn("search result not cacheable",
			slog.String(logx.FieldCacheKey, key),
			logx.Error(err),
		)

		return
	}

	s.cache.Put(ctx, key, payload, SourceMock, s.cfg.TTL)
}

func (s *Service) journal(ctx context.Context, meta Meta, query, source string, hit bool) {
	err := s.logs.EmitSearchLog(ctx, entity.SearchLog{
		PhoneNumber:      query,
		NormalizedNumber: query,
		IPAddress:        meta.IP,
		UserAgent:        meta.UserAgent,
		FoundResults:     true,
		APISource:        source,
		CacheHit:         hit,
	})
	if err != nil {
		logger(ctx).Warn("search log emit failed", logx.Error(err))
	}
}
