package server

import (
	"errors"

	"git.appkode.ru/pub/go/failure"

	"numberlookup/internal/domain"
	"numberlookup/internal/domain/entity"
	"numberlookup/pkg/errcodes"
	"numberlookup/pkg/rest"
)

// asFailure lifts a domain error into a failure class so reply.Error picks
// the right status: bad input is 400, limiter rejections are 403, the rest
// stays 500.
func asFailure(err error) error {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return err
	}

	switch appErr.Code {
	case errcodes.InvalidPhoneFormat,
		errcodes.PhoneNotValid,
		errcodes.UnsupportedRegion,
		errcodes.MissingSearchQuery,
		errcodes.ValidationError:
		return failure.NewInvalidArgumentErrorFromError(
			err,
			failure.WithCode(appErr.Code),
			failure.WithDescription(appErr.Message),
		)
	case errcodes.RateLimitExceeded, errcodes.TemporarilyBlocked:
		return failure.NewForbiddenError(
			appErr.Error(),
			failure.WithCode(appErr.Code),
			failure.WithDescription(appErr.Message),
		)
	default:
		return err
	}
}

func newRESTPhoneLookup(result entity.LookupResult) rest.PhoneLookup {
	return rest.PhoneLookup{
		Number:          result.Number,
		FormattedNumber: result.FormattedNumber,
		Valid:           result.Valid,
		CountryCode:     result.CountryCode,
		CountryName:     result.CountryName,
		Location:        result.Location,
		Carrier:         result.Carrier,
		LineType:        result.LineType.String(),
		AreaCode:        result.AreaCode,
		Source:          result.Source.String(),
		Cached:          result.Cached,
		AffiliateURL:    result.AffiliateURL,
	}
}

func newRESTPeopleSearch(result entity.PeopleSearchResult) rest.PeopleSearch {
	records := make([]rest.PersonRecord, 0, len(result.Results))
	for _, r := range result.Results {
		records = append(records, rest.PersonRecord{
			Name:           r.Name,
			AgeRange:       r.AgeRange,
			CurrentAddress: newRESTAddress(r.CurrentAddress),
			PhoneNumbers:   r.PhoneNumbers,
			Relatives:      r.Relatives,
			EmailAddresses: r.EmailAddresses,
		})
	}

	return rest.PeopleSearch{
		Success: true,
		Query: rest.PeopleSearchQuery{
			FirstName: result.Query.FirstName,
			LastName:  result.Query.LastName,
			City:      result.Query.City,
			State:     result.Query.State,
		},
		Results:      records,
		TotalResults: result.TotalResults,
		Source:       result.Source,
		Cached:       result.Cached,
		AffiliateURL: result.AffiliateURL,
	}
}

func newRESTAddress(address entity.Address) rest.Address {
	return rest.Address{
		Street: address.Street,
		City:   address.City,
		State:  address.State,
		Zip:    address.Zip,
	}
}

func newRESTAddressSearch(result entity.AddressSearchResult) rest.AddressSearch {
	return rest.AddressSearch{
		Success: true,
		Query:   newRESTAddress(result.Query),
		Property: rest.PropertyRecord{
			Address:        newRESTAddress(result.Property.Address),
			PropertyType:   result.Property.PropertyType,
			YearBuilt:      result.Property.YearBuilt,
			SquareFeet:     result.Property.SquareFeet,
			Bedrooms:       result.Property.Bedrooms,
			Bathrooms:      result.Property.Bathrooms,
			EstimatedValue: result.Property.EstimatedValue,
			LastSaleDate:   result.Property.LastSaleDate,
			OwnerName:      result.Property.OwnerName,
			Residents:      result.Property.Residents,
		},
		Source:       result.Source,
		Cached:       result.Cached,
		AffiliateURL: result.AffiliateURL,
	}
}

func newRESTBackgroundCheck(result entity.BackgroundReport) rest.BackgroundCheck {
	return rest.BackgroundCheck{
		Success:      true,
		Name:         result.Name,
		AgeRange:     result.AgeRange,
		Addresses:    result.Addresses,
		CriminalHits: result.CriminalHits,
		Relatives:    result.Relatives,
		ReportDate:   result.ReportDate,
		Source:       result.Source,
		Cached:       result.Cached,
		AffiliateURL: result.AffiliateURL,
	}
}
