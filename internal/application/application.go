// Package application собирает сервис целиком: конфиг, коннекторы,
// хранилища, доменные сервисы и модули.
package application

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"numberlookup/internal/config"
	"numberlookup/internal/domain/service/areacode"
	"numberlookup/internal/domain/service/lookup"
	"numberlookup/internal/domain/service/normalize"
	"numberlookup/internal/domain/service/ratelimit"
	"numberlookup/internal/domain/service/respcache"
	"numberlookup/internal/domain/service/search"
	"numberlookup/internal/infrastructure/cachestore"
	"numberlookup/internal/infrastructure/persistence"
	"numberlookup/internal/infrastructure/queue"
	"numberlookup/internal/infrastructure/ratestore"
	"numberlookup/internal/server"
	"numberlookup/internal/worker"
	"numberlookup/pkg/application/connectors"
	"numberlookup/pkg/application/modules"
	"numberlookup/pkg/contextx"
	"numberlookup/pkg/logx"
	"numberlookup/pkg/middlewarex"
)

const (
	httpReadHeaderTimeout = 5 * time.Second
	logFieldMaxLen        = 2048
)

func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}

	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db.Ping: %w", err)
	}

	var rd *connectors.Redis
	if needRedis(cfg) {
		rd = &connectors.Redis{
			Address:            cfg.Redis.Address,
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}
		defer rd.Close(ctx)
	}

	logRepo := persistence.NewSearchLogRepository(db)
	cacheRepo := persistence.NewCacheRepository(db)

	cache := respcache.New(cacheStore(ctx, cfg, rd, cacheRepo))
	limiter := ratelimit.New(rateStore(ctx, cfg, rd), ratelimit.Limits{
		PerHour:       cfg.RateLimit.PerHour,
		PerDay:        cfg.RateLimit.PerDay,
		BlockCooldown: cfg.RateLimit.BlockCooldown,
	})

	var emitter lookup.LogEmitter
	if cfg.Asynq.Enabled {
		asynqClient := asynq.NewClient(asynqRedis(cfg))
		defer asynqClient.Close()

		emitter = queue.NewEnqueuer(asynqClient)
	} else {
		emitter = queue.NewDirectEmitter(logRepo)
	}

	resolver, err := areacode.New()
	if err != nil {
		return fmt.Errorf("areacode.New: %w", err)
	}

	lookupService := lookup.New(
		normalize.New(cfg.Lookup.DefaultRegion),
		resolver,
		cache,
		limiter,
		emitter,
		lookup.Config{
			BaseTTL:       cfg.Cache.BaseTTL,
			AffiliateURL:  cfg.Lookup.AffiliateURL,
			AffiliateName: cfg.Lookup.AffiliateName,
		},
	)

	searchService := search.New(cache, emitter, search.Config{
		TTL:          cfg.Cache.SearchTTL,
		AffiliateURL: cfg.Lookup.AffiliateURL,
	})

	srv := server.NewServer(
		server.NewLookupServer(lookupService),
		server.NewSearchServer(searchService),
		server.NewSystemServer(resolver, cfg.App.Version),
	)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router(srv),
		ReadHeaderTimeout: httpReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.Metrics.ListenAddress}.Run(ctx, g)

	if cfg.Asynq.Enabled {
		modules.AsynqServer{
			RedisAddress:  cfg.Redis.Address,
			RedisUsername: cfg.Redis.Username,
			RedisPassword: cfg.Redis.Password,
			RedisDB:       cfg.Redis.DatabaseNumber,
		}.Run(ctx, g, modules.AsynqQueues{queue.QueueLogs: 1}, worker.NewLogWriter(logRepo).Handlers()...)
	}

	if cfg.Cache.Store == config.StorePostgres {
		reclaimer := worker.NewReclaimer(cache).WithInterval(cfg.Cache.SweepInterval)

		g.Go(func() error {
			return reclaimer.Run(ctx)
		})
	}

	contextx.LoggerFromContextOrDefault(ctx).Info("application started")

	return g.Wait()
}

func router(srv server.Server) http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
		middlewarex.ClientIP,
	)

	srv.RegisterRoutes(r)

	return r
}

// needRedis covers the stores only: asynq holds its own connection.
func needRedis(cfg config.Config) bool {
	return cfg.Cache.Store == config.StoreRedis ||
		cfg.RateLimit.Store == config.StoreRedis
}

func cacheStore(ctx context.Context, cfg config.Config, rd *connectors.Redis, repo *persistence.CacheRepository) respcache.Store {
	switch cfg.Cache.Store {
	case config.StoreRedis:
		return cachestore.NewRedisStore(rd.Client(ctx))
	case config.StorePostgres:
		return repo
	default:
		return cachestore.NewMemoryStore()
	}
}

func rateStore(ctx context.Context, cfg config.Config, rd *connectors.Redis) ratelimit.Store {
	if cfg.RateLimit.Store == config.StoreRedis {
		return ratestore.NewRedisStore(rd.Client(ctx))
	}

	return ratestore.NewMemoryStore()
}

func asynqRedis(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		//nolint:exhaustruct
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	}
}
