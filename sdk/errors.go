package sdk

import (
	"fmt"

	"github.com/dmitrijs2005/apisdk/internal/common"
)

var (
	ErrValidation     = common.ErrValidation
	ErrInvalidBaseURL = common.ErrInvalidBaseURL
	ErrUnauthorized   = common.ErrUnauthorized
	ErrUnavailable    = common.ErrUnavailable
)

// ValidationError is returned, before any request is made, when a required
// parameter is missing.
type ValidationError struct {
	Module string
	Param  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("the %s %s is not valid or it was not specified properly", e.Module, e.Param)
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}
