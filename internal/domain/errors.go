package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidAmount        = errors.New("amount must be a positive number")
	ErrInvalidPurpose       = errors.New("purpose must be GENERAL or SPONSOR_PET")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrUnrecognizedStatus   = errors.New("unrecognized gateway status")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrConflict             = errors.New("resource already exists")
	ErrPetUnavailable       = errors.New("pet not available for adoption")
	ErrNotEditable          = errors.New("resource cannot be modified in its current status")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountDisabled      = errors.New("user account is disabled")
)

// DomainError attaches a resource-specific message to one of the sentinel errors above.
type DomainError struct {
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Message: fmt.Sprintf("%s not found", resource),
		Err:     ErrNotFound,
	}
}

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Message: fmt.Sprintf("%s is required", field),
		Err:     ErrMissingRequiredField,
	}
}

func NewInvalidStatusError(resource, status string) *DomainError {
	return &DomainError{
		Message: fmt.Sprintf("invalid %s status %q", resource, status),
		Err:     ErrInvalidStatus,
	}
}

func NewConflictError(message string) *DomainError {
	return &DomainError{
		Message: message,
		Err:     ErrConflict,
	}
}

func NewNotEditableError(message string) *DomainError {
	return &DomainError{
		Message: message,
		Err:     ErrNotEditable,
	}
}
