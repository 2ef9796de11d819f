package entity

// LineType classifies what kind of line a number terminates on.
type LineType string

const (
	LineTypeMobile   LineType = "mobile"
	LineTypeLandline LineType = "landline"
	LineTypeVoip     LineType = "voip"
	LineTypeTollFree LineType = "toll_free"
	LineTypeUnknown  LineType = "unknown"
)

func (t LineType) String() string {
	return string(t)
}

// NormalizedNumber is the per-request value produced by the normalizer.
// Immutable after creation.
type NormalizedNumber struct {
	Raw      string   // input as received
	E164     string   // +1XXXXXXXXXX
	National string   // (XXX) XXX-XXXX, for display
	Region   string   // ISO region code, e.g. "US"
	AreaCode string   // first three digits of the national number, if any
	Valid    bool
	LineType LineType
}

// Source tags where a lookup answer came from.
type Source string

const (
	SourceLive  Source = "live"
	SourceCache Source = "cache"
)

func (s Source) String() string {
	return string(s)
}

// LookupResult is the answer for a phone lookup. Immutable once returned.
type LookupResult struct {
	Number          string   `json:"number"`
	FormattedNumber string   `json:"formatted_number"`
	Valid           bool     `json:"valid"`
	CountryCode     string   `json:"country_code"`
	CountryName     string   `json:"country_name"`
	Location        string   `json:"location"`
	Carrier         string   `json:"carrier"`
	LineType        LineType `json:"line_type"`
	AreaCode        string   `json:"area_code"`
	Source          Source   `json:"source"`
	Cached          bool     `json:"cached"`
	AffiliateURL    string   `json:"affiliate_url,omitempty"`
}
