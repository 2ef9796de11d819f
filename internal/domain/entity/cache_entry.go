package entity

import "time"

// CacheEntry is a previously computed answer. Owned exclusively by the
// response cache; only HitCount changes after creation.
type CacheEntry struct {
	Key       string
	Payload   []byte // serialized result, opaque to the store
	Source    string
	CreatedAt time.Time
	ExpiresAt time.Time
	HitCount  int64
}

// Expired reports whether the entry is logically absent at the given moment.
func (e CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
