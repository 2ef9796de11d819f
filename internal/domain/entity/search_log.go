package entity

import "time"

// SearchLog is an immutable record of one handled search request.
type SearchLog struct {
	ID               int64
	PhoneNumber      string // raw input (or the query string for non-phone searches)
	NormalizedNumber string
	IPAddress        string
	UserAgent        string
	FoundResults     bool
	APISource        string
	CacheHit         bool
	CreatedAt        time.Time
}

// AffiliateClick records one outbound affiliate link click.
type AffiliateClick struct {
	ID            int64
	PhoneNumber   string
	AffiliateName string
	ClickID       string
	IPAddress     string
	UserAgent     string
	CreatedAt     time.Time
}
