// Package normalize turns raw phone-number input into a canonical
// representation. Pure functions over the static numbering-plan metadata.
package normalize

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"numberlookup/internal/domain"
	"numberlookup/internal/domain/entity"
	"numberlookup/pkg/errcodes"
)

const (
	minDigits = 7
	maxDigits = 15 // E.164 ceiling
)

// Normalizer validates input against one supported region. The deployment is
// US-only: globally valid numbers from other regions are rejected on purpose.
type Normalizer struct {
	defaultRegion string
}

func New(defaultRegion string) Normalizer {
	return Normalizer{defaultRegion: defaultRegion}
}

// Normalize cleans and parses raw input. It returns a *domain.AppError with
// one of the errcodes.InvalidPhoneFormat / PhoneNotValid / UnsupportedRegion
// codes on rejection.
func (n Normalizer) Normalize(raw string) (entity.NormalizedNumber, error) {
	cleaned := Clean(raw)

	if digits := strings.TrimPrefix(cleaned, "+"); len(digits) < minDigits || len(digits) > maxDigits {
		return entity.NormalizedNumber{}, domain.NewError(
			errcodes.InvalidPhoneFormat,
			"phone number must contain 7 to 15 digits",
		)
	}

	parsed, err := phonenumbers.Parse(cleaned, n.defaultRegion)
	if err != nil {
		return entity.NormalizedNumber{}, domain.WrapError(
			err,
			errcodes.InvalidPhoneFormat,
			"unable to parse phone number",
		)
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return entity.NormalizedNumber{}, domain.NewError(
			errcodes.PhoneNotValid,
			"phone number is not valid",
		)
	}

	region := phonenumbers.GetRegionCodeForNumber(parsed)
	if region != n.defaultRegion {
		return entity.NormalizedNumber{}, domain.NewError(
			errcodes.UnsupportedRegion,
			"only US phone numbers are supported",
		)
	}

	return entity.NormalizedNumber{
		Raw:      raw,
		E164:     phonenumbers.Format(parsed, phonenumbers.E164),
		National: phonenumbers.Format(parsed, phonenumbers.NATIONAL),
		Region:   region,
		AreaCode: areaCode(parsed),
		Valid:    true,
		LineType: lineType(phonenumbers.GetNumberType(parsed)),
	}, nil
}

// Clean strips everything except digits, keeping a single leading "+".
// Subsequent "+" signs are dropped as formatting noise.
func Clean(raw string) string {
	var b strings.Builder

	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "+" {
		return ""
	}

	return cleaned
}

func areaCode(parsed *phonenumbers.PhoneNumber) string {
	national := phonenumbers.GetNationalSignificantNumber(parsed)
	if len(national) < 10 {
		return ""
	}

	return national[:3]
}

// FIXED_LINE_OR_MOBILE is reported as mobile: for the NANP the distinction is
// not observable from the numbering plan alone.
func lineType(t phonenumbers.PhoneNumberType) entity.LineType {
	switch t {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
		return entity.LineTypeMobile
	case phonenumbers.FIXED_LINE:
		return entity.LineTypeLandline
	case phonenumbers.VOIP:
		return entity.LineTypeVoip
	case phonenumbers.TOLL_FREE:
		return entity.LineTypeTollFree
	default:
		return entity.LineTypeUnknown
	}
}
