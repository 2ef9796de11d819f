package respcache

import "time"

// Answer completeness drives how long it is worth reusing. The scale mirrors
// the confidence in each tier: a fully resolved answer keeps the base TTL,
// partially resolved answers keep 75%, minimal or invalid ones 50%.
type Quality int

const (
	QualityMinimal Quality = iota
	QualityPartial
	QualityFull
)

// QualityOf grades an answer by whether location and carrier were resolved
// from real table entries rather than synthesized fallbacks.
func QualityOf(valid, locationKnown, carrierKnown bool) Quality {
	switch {
	case !valid:
		return QualityMinimal
	case locationKnown && carrierKnown:
		return QualityFull
	case locationKnown || carrierKnown:
		return QualityPartial
	default:
		return QualityMinimal
	}
}

// TTL scales the base TTL by quality.
func TTL(base time.Duration, q Quality) time.Duration {
	switch q {
	case QualityFull:
		return base
	case QualityPartial:
		return base * 3 / 4
	default:
		return base / 2
	}
}
