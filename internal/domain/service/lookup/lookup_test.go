package lookup

import (
	"context"
	"testing"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numberlookup/internal/domain"
	"numberlookup/internal/domain/entity"
	"numberlookup/internal/domain/service/areacode"
	"numberlookup/internal/domain/service/normalize"
	"numberlookup/internal/domain/service/ratelimit"
	"numberlookup/internal/domain/service/respcache"
	"numberlookup/internal/infrastructure/ratestore"
	"numberlookup/pkg/errcodes"
)

const affiliateURL = "https://partner.example.com/?o=100265"

type fakeCacheStore struct {
	entries map[string]entity.CacheEntry
	hits    map[string]int
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{
		entries: map[string]entity.CacheEntry{},
		hits:    map[string]int{},
	}
}

func (s *fakeCacheStore) Get(_ context.Context, key string) (entity.CacheEntry, bool, error) {
	entry, ok := s.entries[key]
	return entry, ok, nil
}

func (s *fakeCacheStore) Put(_ context.Context, entry entity.CacheEntry) error {
	s.entries[entry.Key] = entry
	return nil
}

func (s *fakeCacheStore) IncrementHit(_ context.Context, key string) error {
	if _, ok := s.entries[key]; ok {
		s.hits[key]++
	}
	return nil
}

func (s *fakeCacheStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for key, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

type fakeEmitter struct {
	logs   []entity.SearchLog
	clicks []entity.AffiliateClick
}

func (e *fakeEmitter) EmitSearchLog(_ context.Context, log entity.SearchLog) error {
	e.logs = append(e.logs, log)
	return nil
}

func (e *fakeEmitter) EmitAffiliateClick(_ context.Context, click entity.AffiliateClick) error {
	e.clicks = append(e.clicks, click)
	return nil
}

type fixture struct {
	service *Service
	store   *fakeCacheStore
	emitter *fakeEmitter
}

func newFixture(t *testing.T, limits ratelimit.Limits) *fixture {
	t.Helper()

	resolver, err := areacode.New()
	require.NoError(t, err)

	store := newFakeCacheStore()
	emitter := &fakeEmitter{}

	service := New(
		normalize.New("US"),
		resolver,
		respcache.New(store),
		ratelimit.New(ratestore.NewMemoryStore(), limits),
		emitter,
		Config{
			BaseTTL:       7 * 24 * time.Hour,
			AffiliateURL:  affiliateURL,
			AffiliateName: "truthfinder",
		},
	)

	return &fixture{service: service, store: store, emitter: emitter}
}

func defaultLimits() ratelimit.Limits {
	return ratelimit.Limits{PerHour: 50, PerDay: 100}
}

func meta() RequestMeta {
	return RequestMeta{IP: "10.0.0.1", UserAgent: "test-agent"}
}

func requireCode(t *testing.T, err error, want failure.ErrorCode) {
	t.Helper()

	require.Error(t, err)
	code, ok := domain.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, want, code)
}

func TestLookupLiveAnswer(t *testing.T) {
	f := newFixture(t, defaultLimits())

	result, err := f.service.Lookup(context.Background(), meta(), "(718) 222-2222")
	require.NoError(t, err)

	assert.Equal(t, "+17182222222", result.Number)
	assert.Equal(t, "(718) 222-2222", result.FormattedNumber)
	assert.True(t, result.Valid)
	assert.Equal(t, "US", result.CountryCode)
	assert.Equal(t, "United States", result.CountryName)
	assert.Equal(t, "Brooklyn/Queens, New York", result.Location)
	assert.Equal(t, "718", result.AreaCode)
	assert.Equal(t, entity.SourceLive, result.Source)
	assert.False(t, result.Cached)
	assert.Equal(t, affiliateURL, result.AffiliateURL)

	// Полный ответ живёт базовый срок.
	entry, ok := f.store.entries["phone_us:+17182222222"]
	require.True(t, ok)
	assert.Equal(t, 7*24*time.Hour, entry.ExpiresAt.Sub(entry.CreatedAt))

	require.Len(t, f.emitter.logs, 1)
	log := f.emitter.logs[0]
	assert.Equal(t, "(718) 222-2222", log.PhoneNumber)
	assert.Equal(t, "+17182222222", log.NormalizedNumber)
	assert.Equal(t, "10.0.0.1", log.IPAddress)
	assert.True(t, log.FoundResults)
	assert.Equal(t, "live", log.APISource)
	assert.False(t, log.CacheHit)
}

func TestLookupSecondCallHitsCache(t *testing.T) {
	f := newFixture(t, defaultLimits())
	ctx := context.Background()

	_, err := f.service.Lookup(ctx, meta(), "(718) 222-2222")
	require.NoError(t, err)

	result, err := f.service.Lookup(ctx, meta(), "718-222-2222")
	require.NoError(t, err)

	assert.Equal(t, entity.SourceCache, result.Source)
	assert.True(t, result.Cached)
	assert.Equal(t, "+17182222222", result.Number)
	assert.Equal(t, "Brooklyn/Queens, New York", result.Location)
	assert.Equal(t, affiliateURL, result.AffiliateURL)

	assert.Equal(t, 1, f.store.hits["phone_us:+17182222222"])

	require.Len(t, f.emitter.logs, 2)
	assert.True(t, f.emitter.logs[1].CacheHit)
	assert.Equal(t, "live", f.emitter.logs[1].APISource)
}

func TestLookupUnknownAreaCodeFallbacks(t *testing.T) {
	f := newFixture(t, defaultLimits())

	result, err := f.service.Lookup(context.Background(), meta(), "800-444-4444")
	require.NoError(t, err)

	assert.Equal(t, "Area Code 800, United States", result.Location)
	assert.Equal(t, "Wireless Carrier", result.Carrier)
	assert.Equal(t, entity.LineTypeTollFree, result.LineType)

	// Ответ из одних запасных строк живёт вдвое меньше.
	entry, ok := f.store.entries["phone_us:+18004444444"]
	require.True(t, ok)
	assert.Equal(t, 7*12*time.Hour, entry.ExpiresAt.Sub(entry.CreatedAt))
}

func TestLookupPartialAnswerShorterTTL(t *testing.T) {
	f := newFixture(t, defaultLimits())

	// Код 332 есть в таблице локаций, но не операторов.
	result, err := f.service.Lookup(context.Background(), meta(), "+1 332 222 2222")
	require.NoError(t, err)
	assert.Equal(t, "Wireless Carrier", result.Carrier)

	entry, ok := f.store.entries["phone_us:+13322222222"]
	require.True(t, ok)
	assert.Equal(t, 7*18*time.Hour, entry.ExpiresAt.Sub(entry.CreatedAt))
}

func TestLookupInvalidInputConsumesQuota(t *testing.T) {
	f := newFixture(t, ratelimit.Limits{PerHour: 2, PerDay: 10})
	ctx := context.Background()

	_, err := f.service.Lookup(ctx, meta(), "garbage")
	requireCode(t, err, errcodes.InvalidPhoneFormat)

	require.Len(t, f.emitter.logs, 1)
	assert.Equal(t, "garbage", f.emitter.logs[0].PhoneNumber)
	assert.Empty(t, f.emitter.logs[0].NormalizedNumber)
	assert.False(t, f.emitter.logs[0].FoundResults)

	_, err = f.service.Lookup(ctx, meta(), "also garbage")
	requireCode(t, err, errcodes.InvalidPhoneFormat)

	// Две мусорные попытки исчерпали часовую квоту.
	_, err = f.service.Lookup(ctx, meta(), "(718) 222-2222")
	requireCode(t, err, errcodes.RateLimitExceeded)
}

func TestLookupRateLimited(t *testing.T) {
	f := newFixture(t, ratelimit.Limits{PerHour: 3, PerDay: 10})
	ctx := context.Background()

	for range 3 {
		_, err := f.service.Lookup(ctx, meta(), "(718) 222-2222")
		require.NoError(t, err)
	}

	_, err := f.service.Lookup(ctx, meta(), "(718) 222-2222")
	requireCode(t, err, errcodes.RateLimitExceeded)

	// Другой адрес лимитом не задет.
	_, err = f.service.Lookup(ctx, RequestMeta{IP: "10.0.0.2"}, "(718) 222-2222")
	require.NoError(t, err)

	assert.Equal(t, ratelimit.RateLimited, f.service.Peek(ctx, "10.0.0.1"))
	assert.Equal(t, ratelimit.Allowed, f.service.Peek(ctx, "10.0.0.2"))
}

func TestLookupBlockedAfterCeilingWithCooldown(t *testing.T) {
	f := newFixture(t, ratelimit.Limits{PerHour: 1, PerDay: 10, BlockCooldown: time.Hour})
	ctx := context.Background()

	_, err := f.service.Lookup(ctx, meta(), "(718) 222-2222")
	require.NoError(t, err)

	_, err = f.service.Lookup(ctx, meta(), "(718) 222-2222")
	requireCode(t, err, errcodes.RateLimitExceeded)

	_, err = f.service.Lookup(ctx, meta(), "(718) 222-2222")
	requireCode(t, err, errcodes.TemporarilyBlocked)
}

func TestLookupBrokenCachePayloadRefetches(t *testing.T) {
	f := newFixture(t, defaultLimits())
	ctx := context.Background()

	now := time.Now()
	f.store.entries["phone_us:+17182222222"] = entity.CacheEntry{
		Key:       "phone_us:+17182222222",
		Payload:   []byte("not json"),
		Source:    "live",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	result, err := f.service.Lookup(ctx, meta(), "(718) 222-2222")
	require.NoError(t, err)
	assert.Equal(t, entity.SourceLive, result.Source)

	// Битая запись перезаписана живым ответом.
	entry := f.store.entries["phone_us:+17182222222"]
	assert.JSONEq(t, mustJSON(t, result), string(entry.Payload))
}

func TestTrackAffiliateClick(t *testing.T) {
	f := newFixture(t, defaultLimits())

	url, err := f.service.TrackAffiliateClick(context.Background(), meta(), "(718) 222-2222", "", "ck_123")
	require.NoError(t, err)
	assert.Equal(t, affiliateURL, url)

	require.Len(t, f.emitter.clicks, 1)
	click := f.emitter.clicks[0]
	assert.Equal(t, "+17182222222", click.PhoneNumber)
	assert.Equal(t, "truthfinder", click.AffiliateName)
	assert.Equal(t, "ck_123", click.ClickID)
	assert.Equal(t, "10.0.0.1", click.IPAddress)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return string(data)
}
