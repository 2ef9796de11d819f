package entity

import "time"

// RateWindowState is the per-IP admission state: two independent counters
// with lazy rollover plus an optional temporary block. There is at most one
// state per IP; it is never deleted, only cycled.
type RateWindowState struct {
	IP           string
	HourCount    int
	HourStart    time.Time
	DayCount     int
	DayStart     time.Time
	IsBlocked    bool
	BlockedUntil time.Time
}

// Rollover zeroes any counter whose window has elapsed. Callers must hold the
// per-IP critical section.
func (s *RateWindowState) Rollover(now time.Time) {
	if now.After(s.HourStart.Add(time.Hour)) {
		s.HourCount = 0
		s.HourStart = now
	}

	if now.After(s.DayStart.Add(24 * time.Hour)) {
		s.DayCount = 0
		s.DayStart = now
	}
}
