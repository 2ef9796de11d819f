// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// PhoneLookup Результат поиска по номеру телефона
type PhoneLookup struct {
	Number          string `json:"number"`
	FormattedNumber string `json:"formatted_number"`
	Valid           bool   `json:"valid"`
	CountryCode     string `json:"country_code"`
	CountryName     string `json:"country_name"`
	Location        string `json:"location"`
	Carrier         string `json:"carrier"`
	LineType        string `json:"line_type"`
	AreaCode        string `json:"area_code"`
	Source          string `json:"source"`
	Cached          bool   `json:"cached"`
	AffiliateURL    string `json:"affiliate_url,omitempty"`
}

type PeopleSearchQuery struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
}

type PeopleSearch struct {
	Success      bool              `json:"success"`
	Query        PeopleSearchQuery `json:"query"`
	Results      []PersonRecord    `json:"results"`
	TotalResults int               `json:"total_results"`
	Source       string            `json:"source"`
	Cached       bool              `json:"cached"`
	AffiliateURL string            `json:"affiliate_url,omitempty"`
}

type PersonRecord struct {
	Name           string   `json:"name"`
	AgeRange       string   `json:"age"`
	CurrentAddress Address  `json:"current_address"`
	PhoneNumbers   []string `json:"phone_numbers"`
	Relatives      []string `json:"relatives"`
	EmailAddresses []string `json:"email_addresses"`
}

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip,omitempty"`
}

type AddressSearch struct {
	Success      bool           `json:"success"`
	Query        Address        `json:"query"`
	Property     PropertyRecord `json:"property"`
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

type BackgroundCheck struct {
	Success      bool     `json:"success"`
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

type AffiliateClickRequest struct {
	PhoneNumber   string `json:"phone_number"`
	AffiliateName string `json:"affiliate_name" validate:"required"`
	ClickID       string `json:"click_id,omitempty"`
}

type AffiliateClickAck struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

type Health struct {
	Status             string   `json:"status"`
	Message            string   `json:"message"`
	Timestamp          string   `json:"timestamp"`
	Version            string   `json:"version"`
	SupportedCountries []string `json:"supported_countries"`
	AreaCodesSupported int      `json:"area_codes_supported"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
