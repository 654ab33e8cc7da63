package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when sign-in credentials are rejected.
	ErrInvalidCredentials = errors.New("invalid login credentials")

	// ErrNoSession is returned when an operation requires a signed-in session.
	ErrNoSession = errors.New("no active session")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports caller-supplied data that violates a documented
// constraint, e.g. a fuel entry missing both stock number and VIN.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
