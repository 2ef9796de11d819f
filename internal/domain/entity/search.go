package entity

// PeopleQuery is a people-search request after trimming.
type PeopleQuery struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
}

// FullName joins the non-empty name parts with a single space.
func (q PeopleQuery) FullName() string {
	switch {
	case q.FirstName == "":
		return q.LastName
	case q.LastName == "":
		return q.FirstName
	default:
		return q.FirstName + " " + q.LastName
	}
}

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip,omitempty"`
}

type PersonRecord struct {
	Name           string   `json:"name"`
	AgeRange       string   `json:"age"`
	CurrentAddress Address  `json:"current_address"`
	PhoneNumbers   []string `json:"phone_numbers"`
	Relatives      []string `json:"relatives"`
	EmailAddresses []string `json:"email_addresses"`
}

type PeopleSearchResult struct {
	Query        PeopleQuery    `json:"query"`
	Results      []PersonRecord `json:"results"`
	TotalResults int            `json:"total_results"`
	Source       string         `json:"source"`
	Cached       bool           `json:"cached"`
	AffiliateURL string         `json:"affiliate_url,omitempty"`
}

type PropertyRecord struct {
	Address        Address  `json:"address"`
	PropertyType   string   `json:"property_type"`
	YearBuilt      int      `json:"year_built"`
	SquareFeet     int      `json:"square_feet"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      int      `json:"bathrooms"`
	EstimatedValue string   `json:"estimated_value"`
	LastSaleDate   string   `json:"last_sale_date"`
	OwnerName      string   `json:"owner_name"`
	Residents      []string `json:"residents"`
}

type AddressSearchResult struct {
	Query        Address        `json:"query"`
	Property     PropertyRecord `json:"property"`
	Source       string         `json:"source"`
	Cached       bool           `json:"cached"`
	AffiliateURL string         `json:"affiliate_url,omitempty"`
}

type BackgroundReport struct {
	Name         string   `json:"name"`
	AgeRange     string   `json:"age"`
	Addresses    []string `json:"address_history"`
	CriminalHits int      `json:"criminal_records"`
	Relatives    []string `json:"relatives"`
	ReportDate   string   `json:"report_date"`
	Source       string   `json:"source"`
	Cached       bool     `json:"cached"`
	AffiliateURL string   `json:"affiliate_url,omitempty"`
}
