package config

import "time"

// Store kinds for cache and rate-limit state.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Lookup struct {
	DefaultRegion string `env:"LOOKUP_DEFAULT_REGION" envDefault:"US"`
	AffiliateURL  string `env:"AFFILIATE_URL" envDefault:"https://www.truthfinder.com/?a=default&o=100265&utm_source=numberlookup"`
	AffiliateName string `env:"AFFILIATE_NAME" envDefault:"truthfinder"`
}

type RateLimit struct {
	// Store is memory or redis.
	Store   string `env:"RATELIMIT_STORE" envDefault:"memory"`
	PerHour int    `env:"RATELIMIT_PER_HOUR" envDefault:"50"`
	PerDay  int    `env:"RATELIMIT_PER_DAY" envDefault:"100"`
	// BlockCooldown escalates ceiling hits into temporary blocks. Zero
	// disables escalation.
	BlockCooldown time.Duration `env:"RATELIMIT_BLOCK_COOLDOWN" envDefault:"0"`
}

type Cache struct {
	// Store is memory, redis or postgres.
	Store string `env:"CACHE_STORE" envDefault:"memory"`
	// BaseTTL applies to fully resolved phone answers.
	BaseTTL   time.Duration `env:"CACHE_BASE_TTL" envDefault:"168h"`
	SearchTTL time.Duration `env:"CACHE_SEARCH_TTL" envDefault:"1h"`
	// SweepInterval drives the postgres reclaimer.
	SweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" envDefault:"1h"`
}

type Asynq struct {
	Enabled     bool `env:"ASYNQ_ENABLED" envDefault:"false"`
	Concurrency int  `env:"ASYNQ_CONCURRENCY" envDefault:"5"`
}
