package common

import "errors"

var (
	// Construction errors.
	ErrInvalidBaseURL = errors.New("the base URL provided is not valid")

	// Validation errors (raised before any network call).
	ErrValidation = errors.New("validation error")

	// Remote errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")

	// Token lifecycle errors.
	ErrEmptyToken = errors.New("empty token")
)
