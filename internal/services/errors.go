package services

import (
	"errors"
	"strings"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already exists")
	ErrSelfDelete = errors.New("cannot delete your own account")
)

// ValidationError carries field-level messages that handlers surface as a
// 400 with a details list.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Details, "; ")
}

func validationErr(details []string) error {
	if len(details) == 0 {
		return nil
	}
	return &ValidationError{Details: details}
}
