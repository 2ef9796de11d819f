package lookup

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "numberlookup",
		Subsystem: "lookup",
		Name:      "requests_total",
		Help:      "Phone lookups by outcome.",
	}, []string{"outcome"})

	cacheEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "numberlookup",
		Subsystem: "cache",
		Name:      "events_total",
		Help:      "Response cache hits and misses on the lookup path.",
	}, []string{"event"})

	admissionRejects = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "numberlookup",
		Subsystem: "ratelimit",
		Name:      "rejects_total",
		Help:      "Requests rejected by the per-IP limiter.",
	}, []string{"reason"})
)

const (
	outcomeServed   = "served"
	outcomeRejected = "rejected"
	outcomeInvalid  = "invalid"

	eventHit  = "hit"
	eventMiss = "miss"
)
