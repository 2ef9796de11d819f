// Package lookup orchestrates a phone search: admission, normalization,
// cache, area-code resolution, journaling.
package lookup

import (
	"context"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"

	"numberlookup/internal/domain"
	"numberlookup/internal/domain/entity"
	"numberlookup/internal/domain/service/areacode"
	"numberlookup/internal/domain/service/normalize"
	"numberlookup/internal/domain/service/ratelimit"
	"numberlookup/internal/domain/service/respcache"
	"numberlookup/pkg/contextx"
	"numberlookup/pkg/errcodes"
	"numberlookup/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const countryName = "United States"

// LogEmitter is the journaling port. Writes happen off the hot path, either
// through the asynq queue or synchronously when the queue is disabled.
type LogEmitter interface {
	EmitSearchLog(ctx context.Context, log entity.SearchLog) error
	EmitAffiliateClick(ctx context.Context, click entity.AffiliateClick) error
}

type Config struct {
	// BaseTTL is the cache lifetime for a fully resolved answer. Partial
	// answers live shorter, see respcache.TTL.
	BaseTTL       time.Duration
	AffiliateURL  string
	AffiliateName string
}

// RequestMeta carries the caller identity used for limiting and journaling.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type Service struct {
	normalizer normalize.Normalizer
	areaCodes  areacode.Resolver
	cache      *respcache.Cache
	limiter    *ratelimit.Limiter
	logs       LogEmitter
	cfg        Config
}

func New(
	normalizer normalize.Normalizer,
	areaCodes areacode.Resolver,
	cache *respcache.Cache,
	limiter *ratelimit.Limiter,
	logs LogEmitter,
	cfg Config,
) *Service {
	return &Service{
		normalizer: normalizer,
		areaCodes:  areaCodes,
		cache:      cache,
		limiter:    limiter,
		logs:       logs,
		cfg:        cfg,
	}
}

// Lookup answers one phone search. Quota is consumed before the input is
// even parsed: garbage requests burn the caller's budget like real ones.
func (s *Service) Lookup(ctx context.Context, meta RequestMeta, raw string) (entity.LookupResult, error) {
	if err := s.admit(ctx, meta.IP); err != nil {
		lookupsTotal.WithLabelValues(outcomeRejected).Inc()
		return entity.LookupResult{}, err
	}

	num, err := s.normalizer.Normalize(raw)
	if err != nil {
		lookupsTotal.WithLabelValues(outcomeInvalid).Inc()
		s.emitLog(ctx, entity.SearchLog{
			PhoneNumber: raw,
			IPAddress:   meta.IP,
			UserAgent:   meta.UserAgent,
		})

		return entity.LookupResult{}, err
	}

	key := respcache.PhoneKey(num.E164)

	if entry, ok := s.cache.Get(ctx, key); ok {
		if result, ok := s.fromCache(ctx, entry); ok {
			cacheEvents.WithLabelValues(eventHit).Inc()
			lookupsTotal.WithLabelValues(outcomeServed).Inc()
			s.cache.RecordHit(ctx, key)
			s.emitLog(ctx, entity.SearchLog{
				PhoneNumber:      raw,
				NormalizedNumber: num.E164,
				IPAddress:        meta.IP,
				UserAgent:        meta.UserAgent,
				FoundResults:     true,
				APISource:        entry.Source,
				CacheHit:         true,
			})

			return result, nil
		}
	}

	cacheEvents.WithLabelValues(eventMiss).Inc()

	result := s.resolve(num)

	logger(ctx).Debug("resolved live",
		slog.String(logx.FieldAreaCode, num.AreaCode),
		slog.String(logx.FieldSource, entity.SourceLive.String()),
	)

	s.store(ctx, key, num, result)

	lookupsTotal.WithLabelValues(outcomeServed).Inc()
	s.emitLog(ctx, entity.SearchLog{
		PhoneNumber:      raw,
		NormalizedNumber: num.E164,
		IPAddress:        meta.IP,
		UserAgent:        meta.UserAgent,
		FoundResults:     true,
		APISource:        entity.SourceLive.String(),
	})

	return result, nil
}

// Peek reports the admission decision for ip without consuming quota.
func (s *Service) Peek(ctx context.Context, ip string) ratelimit.Decision {
	return s.limiter.Peek(ctx, ip)
}

// TrackAffiliateClick journals an outbound affiliate link click and returns
// the redirect target.
func (s *Service) TrackAffiliateClick(ctx context.Context, meta RequestMeta, phone, affiliateName, clickID string) (string, error) {
	if num, err := s.normalizer.Normalize(phone); err == nil {
		phone = num.E164
	}

	if affiliateName == "" {
		affiliateName = s.cfg.AffiliateName
	}

	err := s.logs.EmitAffiliateClick(ctx, entity.AffiliateClick{
		PhoneNumber:   phone,
		AffiliateName: affiliateName,
		ClickID:       clickID,
		IPAddress:     meta.IP,
		UserAgent:     meta.UserAgent,
	})
	if err != nil {
		return "", domain.WrapError(err, errcodes.InternalServerError, "failed to record affiliate click")
	}

	return s.cfg.AffiliateURL, nil
}

func (s *Service) admit(ctx context.Context, ip string) error {
	switch s.limiter.Acquire(ctx, ip) {
	case ratelimit.RateLimited:
		admissionRejects.WithLabelValues(ratelimit.RateLimited.String()).Inc()
		return domain.NewError(errcodes.RateLimitExceeded, "hourly or daily search limit reached")
	case ratelimit.Blocked:
		admissionRejects.WithLabelValues(ratelimit.Blocked.String()).Inc()
		return domain.NewError(errcodes.TemporarilyBlocked, "address is temporarily blocked")
	default:
		return nil
	}
}

func (s *Service) resolve(num entity.NormalizedNumber) entity.LookupResult {
	location, carrier := s.areaCodes.Resolve(num.AreaCode)

	return entity.LookupResult{
		Number:          num.E164,
		FormattedNumber: num.National,
		Valid:           num.Valid,
		CountryCode:     num.Region,
		CountryName:     countryName,
		Location:        location,
		Carrier:         carrier,
		LineType:        num.LineType,
		AreaCode:        num.AreaCode,
		Source:          entity.SourceLive,
		AffiliateURL:    s.cfg.AffiliateURL,
	}
}

func (s *Service) store(ctx context.Context, key string, num entity.NormalizedNumber, result entity.LookupResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		logger(ctx).Warn("lookup result not cacheable",
			slog.String(logx.FieldCacheKey, key),
			logx.Error(err),
		)

		return
	}

	quality := respcache.QualityOf(num.Valid, s.areaCodes.Known(num.AreaCode), s.areaCodes.KnownCarrier(num.AreaCode))
	ttl := respcache.TTL(s.cfg.BaseTTL, quality)

	s.cache.Put(ctx, key, payload, entity.SourceLive.String(), ttl)
}

// fromCache rebuilds a result from a stored payload. A payload that no longer
// parses is treated as a miss so the entry gets overwritten by a live answer.
func (s *Service) fromCache(ctx context.Context, entry entity.CacheEntry) (entity.LookupResult, bool) {
	var result entity.LookupResult
	if err := json.Unmarshal(entry.Payload, &result); err != nil {
		logger(ctx).Warn("broken cache payload, refetching",
			slog.String(logx.FieldCacheKey, entry.Key),
			logx.Error(err),
		)

		return entity.LookupResult{}, false
	}

	result.Source = entity.SourceCache
	result.Cached = true
	result.AffiliateURL = s.cfg.AffiliateURL

	return result, true
}

func (s *Service) emitLog(ctx context.Context, log entity.SearchLog) {
	if err := s.logs.EmitSearchLog(ctx, log); err != nil {
		logger(ctx).Warn("search log emit failed", logx.Error(err))
	}
}
