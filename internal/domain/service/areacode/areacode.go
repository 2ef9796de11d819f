// Package areacode maps NANP area codes to best-guess location and carrier
// strings. The tables are heuristic data, not authoritative numbering-plan
// assignments: carriers in particular are a rough statistical guess kept for
// parity with the original dataset.
package areacode

import (
	_ "embed"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

//go:embed data/locations.json
var locationsJSON []byte

//go:embed data/carriers.json
var carriersJSON []byte

const (
	fallbackCarrier  = "Wireless Carrier"
	fallbackLocation = "Area Code %s, United States"
)

// Resolver answers location/carrier questions from the embedded tables.
// Lookups never fail: unknown codes get synthesized fallback strings. The two
// tables are keyed independently; a code known to one may be missing from the
// other.
type Resolver struct {
	locations map[string]string
	carriers  map[string]string
}

func New() (Resolver, error) {
	var r Resolver

	if err := json.Unmarshal(locationsJSON, &r.locations); err != nil {
		return Resolver{}, fmt.Errorf("parse locations table: %w", err)
	}

	if err := json.Unmarshal(carriersJSON, &r.carriers); err != nil {
		return Resolver{}, fmt.Errorf("parse carriers table: %w", err)
	}

	return r, nil
}

// Resolve returns a non-empty (location, carrier) pair for any input.
func (r Resolver) Resolve(areaCode string) (location, carrier string) {
	location, ok := r.locations[areaCode]
	if !ok {
		location = fmt.Sprintf(fallbackLocation, areaCode)
	}

	carrier, ok = r.carriers[areaCode]
	if !ok {
		carrier = fallbackCarrier
	}

	return location, carrier
}

// Known reports whether the code is present in the location table. Used by
// the TTL policy to size confidence in an answer.
func (r Resolver) Known(areaCode string) bool {
	_, ok := r.locations[areaCode]
	return ok
}

// KnownCarrier reports whether the code is present in the carrier table.
func (r Resolver) KnownCarrier(areaCode string) bool {
	_, ok := r.carriers[areaCode]
	return ok
}

// Size returns the number of area codes in the location table.
func (r Resolver) Size() int {
	return len(r.locations)
}
