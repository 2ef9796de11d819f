// Package ratelimit gates admission per client IP over rolling hour/day
// windows. Windows roll over lazily, measured from the counter's own last
// reset; there is no background sweep.
package ratelimit

import (
	"context"
	"time"

	"numberlookup/pkg/contextx"
	"numberlookup/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Decision int

const (
	Allowed Decision = iota
	RateLimited
	Blocked
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case RateLimited:
		return "rate_limited"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

type Limits struct {
	PerHour int
	PerDay  int
	// BlockCooldown, when positive, escalates a ceiling hit into a
	// temporary block lasting this long. Zero disables escalation and the
	// counter ceilings are the entire enforcement.
	BlockCooldown time.Duration
}

// Store keeps the per-IP window state. Acquire must perform rollover, block
// check, ceiling check and the increment as one atomic step per IP —
// splitting check from increment loses updates under concurrency and
// over-admits.
type Store interface {
	Acquire(ctx context.Context, ip string, now time.Time, limits Limits) (Decision, error)
	// Peek is the non-mutating admission check.
	Peek(ctx context.Context, ip string, now time.Time, limits Limits) (Decision, error)
}

type Limiter struct {
	store  Store
	limits Limits
	now    func() time.Time
}

func New(store Store, limits Limits) *Limiter {
	return &Limiter{
		store:  store,
		limits: limits,
		now:    time.Now,
	}
}

func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Acquire admits or rejects one request from ip, consuming quota on
// admission. Store failures fail open: a broken limiter store must degrade to
// no limiting, not to a dead API.
func (l *Limiter) Acquire(ctx context.Context, ip string) Decision {
	decision, err := l.store.Acquire(ctx, ip, l.now(), l.limits)
	if err != nil {
		logger(ctx).Warn("rate limit store failed, admitting",
			logx.Error(err),
		)
		return Allowed
	}

	return decision
}

// Peek reports the decision Acquire would make without consuming quota.
func (l *Limiter) Peek(ctx context.Context, ip string) Decision {
	decision, err := l.store.Peek(ctx, ip, l.now(), l.limits)
	if err != nil {
		return Allowed
	}

	return decision
}
