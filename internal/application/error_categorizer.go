package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/shelter-api/internal/domain"
)

// ErrorCategory represents the nature of an error for logging
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError decides how loudly an error is logged
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInternal, ErrCodeGateway:
			return CategoryInfrastructure
		case ErrCodeTimeout:
			return CategoryTransient
		case ErrCodeInvalidState:
			return CategoryBusinessRule
		default:
			return CategoryClientError
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNotEditable),
		errors.Is(err, domain.ErrPetUnavailable):
		return CategoryBusinessRule
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidPurpose),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrUnrecognizedStatus),
		errors.Is(err, domain.ErrMissingRequiredField),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAccountDisabled):
		return CategoryClientError
	}

	return CategoryInfrastructure
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidPurpose),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrUnrecognizedStatus),
		errors.Is(err, domain.ErrMissingRequiredField),
		errors.Is(err, domain.ErrPetUnavailable),
		errors.Is(err, domain.ErrNotEditable):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	// Default to 500
	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "INVALID_AMOUNT"
	case errors.Is(err, domain.ErrInvalidPurpose):
		return "INVALID_PURPOSE"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "INVALID_STATUS"
	case errors.Is(err, domain.ErrUnrecognizedStatus):
		return "UNRECOGNIZED_STATUS"
	case errors.Is(err, domain.ErrMissingRequiredField):
		return "MISSING_REQUIRED_FIELD"
	case errors.Is(err, domain.ErrConflict):
		return ErrCodeConflict
	case errors.Is(err, domain.ErrPetUnavailable):
		return "PET_UNAVAILABLE"
	case errors.Is(err, domain.ErrNotEditable):
		return "NOT_EDITABLE"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return ErrCodeUnauthorized
	case errors.Is(err, domain.ErrAccountDisabled):
		return "ACCOUNT_DISABLED"
	case errors.Is(err, context.DeadlineExceeded):
		return ErrCodeTimeout
	}

	return ErrCodeInternal
}

// PublicMessage is the message safe to show to API clients.
func PublicMessage(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Message
	}
	if ToHTTPStatus(err) >= http.StatusInternalServerError {
		return "Server Error"
	}
	return err.Error()
}
