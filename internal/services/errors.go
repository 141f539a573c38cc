package services

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden is wrapped by every authorization failure.
	ErrForbidden = errors.New("permission denied")
	// ErrNotFound is wrapped by every missing-entity failure.
	ErrNotFound = errors.New("not found")
)

var (
	ErrUserNotFound          = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrSkillNotFound         = fmt.Errorf("%w: skill not found", ErrNotFound)
	ErrDisciplineNotFound    = fmt.Errorf("%w: discipline not found", ErrNotFound)
	ErrProjectNotFound       = fmt.Errorf("%w: project not found", ErrNotFound)
	ErrCollaborationNotFound = fmt.Errorf("%w: collaboration not found", ErrNotFound)
	ErrCommentNotFound       = fmt.Errorf("%w: comment not found", ErrNotFound)
)

// ValidationError ties a rejected input to the field that caused it.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsForbidden reports whether err is an authorization failure.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsNotFound reports whether err means the addressed entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err carries field-level validation detail.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
