package search

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"strings"

	"numberlookup/internal/domain/entity"
	"numberlookup/internal/domain/service/respcache"
)

// Generators are seeded from the cache key, so the same query always yields
// the same records. Convincing demo data, nothing more.

func seededRand(key string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))

	return rand.New(rand.NewSource(int64(h.Sum64()))) //nolint:gosec // not a security context
}

func (s *Service) mockPeople(query entity.PeopleQuery) entity.PeopleSearchResult {
	rng := seededRand(respcache.PeopleKey(query.FirstName, query.LastName, query.City, query.State))

	city, state := query.City, query.State
	if city == "" {
		city = "New York"
	}
	if state == "" {
		state = "NY"
	}

	fullName := query.FullName()
	age := 25 + rng.Intn(40)

	record := entity.PersonRecord{
		Name:     fullName,
		AgeRange: ageRange(age),
		CurrentAddress: entity.Address{
			Street: fmt.Sprintf("%d Main Street", 100+rng.Intn(900)),
			City:   city,
			State:  state,
			Zip:    fmt.Sprintf("%05d", 10001+rng.Intn(80000)),
		},
		PhoneNumbers: []string{
			fmt.Sprintf("(555) %03d-%04d", 100+rng.Intn(900), rng.Intn(10000)),
		},
		Relatives: []string{
			"Jane " + lastOr(query, "Doe") + " (Spouse)",
			fullName + " Sr. (Parent)",
			"Emily " + lastOr(query, "Doe") + " (Child)",
		},
		EmailAddresses: []string{
			mockEmail(query.FirstName, query.LastName, "example.com"),
		},
	}

	return entity.PeopleSearchResult{
		Query:        query,
		Results:      []entity.PersonRecord{record},
		TotalResults: 1,
		Source:       SourceMock,
		AffiliateURL: s.cfg.AffiliateURL,
	}
}

func (s *Service) mockAddress(query entity.Address) entity.AddressSearchResult {
	rng := seededRand(respcache.AddressKey(query.Street, query.City, query.State, query.Zip))

	value := 250_000 + rng.Intn(500_000)
	sqft := 1200 + rng.Intn(2000)

	zip := query.Zip
	if zip == "" {
		zip = "10001"
	}

	return entity.AddressSearchResult{
		Query: query,
		Property: entity.PropertyRecord{
			Address: entity.Address{
				Street: query.Street,
				City:   query.City,
				State:  query.State,
				Zip:    zip,
			},
			PropertyType:   "Single Family Home",
			YearBuilt:      1950 + rng.Intn(70),
			SquareFeet:     sqft,
			Bedrooms:       2 + rng.Intn(4),
			Bathrooms:      1 + rng.Intn(3),
			EstimatedValue: moneyUSD(value),
			LastSaleDate:   "2020-03-15",
			OwnerName:      "John & Jane Doe",
			Residents:      []string{"John Doe", "Jane Doe"},
		},
		Source:       SourceMock,
		AffiliateURL: s.cfg.AffiliateURL,
	}
}

func (s *Service) mockBackground(query entity.PeopleQuery) entity.BackgroundReport {
	rng := seededRand(respcache.BackgroundKey(query.FirstName, query.LastName, query.City, query.State))

	city, state := query.City, query.State
	if city == "" {
		city = "New York"
	}
	if state == "" {
		state = "NY"
	}

	age := 25 + rng.Intn(40)

	return entity.BackgroundReport{
		Name:     query.FullName(),
		AgeRange: ageRange(age),
		Addresses: []string{
			fmt.Sprintf("%d Main Street, %s, %s", 100+rng.Intn(900), city, state),
			fmt.Sprintf("%d Oak Avenue, Los Angeles, CA", 100+rng.Intn(900)),
		},
		CriminalHits: 0,
		Relatives: []string{
			"Jane " + query.LastName + " (Spouse)",
			query.FullName() + " Sr. (Parent)",
			"Emily " + query.LastName + " (Sibling)",
		},
		ReportDate:   s.now().Format("2006-01-02"),
		Source:       SourceMock,
		AffiliateURL: s.cfg.AffiliateURL,
	}
}

func ageRange(age int) string {
	return fmt.Sprintf("%d-%d", age, age+5)
}

func lastOr(query entity.PeopleQuery, fallback string) string {
	if query.LastName != "" {
		return query.LastName
	}

	return fallback
}

func mockEmail(first, last, domain string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{first, last} {
		if p != "" {
			parts = append(parts, strings.ToLower(p))
		}
	}

	return strings.Join(parts, ".") + "@" + domain
}

// moneyUSD formats a dollar amount with thousands separators.
func moneyUSD(amount int) string {
	digits := strconv.Itoa(amount)

	var b strings.Builder
	b.WriteByte('$')

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}

	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}

	return b.String()
}
