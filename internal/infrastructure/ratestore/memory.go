// Package ratestore provides the rate-limit window stores: an in-process
// mutex-map store for single-instance deployments and tests, and a redis
// store for multi-instance ones.
package ratestore

import (
	"context"
	"sync"
	"time"

	"numberlookup/internal/domain/entity"
	"numberlookup/internal/domain/service/ratelimit"
)

// MemoryStore keeps RateWindowState per IP under one mutex, which makes the
// whole check-then-increment sequence atomic. Not suitable for
// multi-instance deployments.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]*entity.RateWindowState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[string]*entity.RateWindowState),
	}
}

func (s *MemoryStore) Acquire(_ context.Context, ip string, now time.Time, limits ratelimit.Limits) (ratelimit.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state(ip, now)

	decision := admit(state, now, limits)
	if decision != ratelimit.Allowed {
		return decision, nil
	}

	state.HourCount++
	state.DayCount++

	return ratelimit.Allowed, nil
}

func (s *MemoryStore) Peek(_ context.Context, ip string, now time.Time, limits ratelimit.Limits) (ratelimit.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[ip]
	if !ok {
		return ratelimit.Allowed, nil
	}

	// admit двигает окна и взводит блокировки, поэтому Peek работает с копией.
	peeked := *state

	return admit(&peeked, now, limits), nil
}

// State returns a copy of the current window state for ip, for the admin
// surface. ok is false when the IP has never been seen.
func (s *MemoryStore) State(ip string) (entity.RateWindowState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[ip]
	if !ok {
		return entity.RateWindowState{}, false
	}

	return *state, true
}

func (s *MemoryStore) state(ip string, now time.Time) *entity.RateWindowState {
	state, ok := s.states[ip]
	if !ok {
		state = &entity.RateWindowState{
			IP:        ip,
			HourStart: now,
			DayStart:  now,
		}
		s.states[ip] = state
	}

	return state
}

// admit mutates rollover/block bookkeeping but not the counters. Callers hold
// the store mutex.
func admit(state *entity.RateWindowState, now time.Time, limits ratelimit.Limits) ratelimit.Decision {
	state.Rollover(now)

	if state.IsBlocked {
		if now.Before(state.BlockedUntil) {
			return ratelimit.Blocked
		}

		state.IsBlocked = false
		state.BlockedUntil = time.Time{}
	}

	if state.HourCount >= limits.PerHour || state.DayCount >= limits.PerDay {
		if limits.BlockCooldown > 0 {
			state.IsBlocked = true
			state.BlockedUntil = now.Add(limits.BlockCooldown)
		}

		return ratelimit.RateLimited
	}

	return ratelimit.Allowed
}
