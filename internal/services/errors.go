package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing row and a row owned by someone else,
	// so callers cannot probe for the existence of other users' sites.
	ErrNotFound = errors.New("not found")

	// ErrValidation is wrapped with the offending detail.
	ErrValidation = errors.New("validation failed")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
