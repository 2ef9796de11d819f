package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	// Normalizer.
	InvalidPhoneFormat failure.ErrorCode = "InvalidPhoneFormat" // мусор вместо номера
	PhoneNotValid      failure.ErrorCode = "PhoneNotValid"      // формально распарсился, но номера такого нет
	UnsupportedRegion  failure.ErrorCode = "UnsupportedRegion"  // валидный, но не US

	// RateLimiter.
	RateLimitExceeded  failure.ErrorCode = "RateLimitExceeded"
	TemporarilyBlocked failure.ErrorCode = "TemporarilyBlocked"

	// Search.
	SearchFailed       failure.ErrorCode = "SearchFailed"
	MissingSearchQuery failure.ErrorCode = "MissingSearchQuery"
)
