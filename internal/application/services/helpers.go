package services

import (
	"errors"
	"strings"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/go-playground/validator"
)

var validate = validator.New()

// validateCommand turns struct-tag violations into a 400 naming the first offending field.
func validateCommand(cmd any) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			return application.NewValidationError(field + " is required")
		case "email":
			return application.NewValidationError("Please add a valid email")
		case "min":
			return application.NewValidationError(field + " must be at least " + fe.Param() + " characters")
		default:
			return application.NewValidationError(field + " is invalid")
		}
	}
	return application.NewInvalidInputError(err)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func nonEmpty(s *string) (string, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "", false
	}
	return strings.TrimSpace(*s), true
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func reviewStatus(raw string) domain.ReviewStatus {
	return domain.ReviewStatus(strings.ToUpper(strings.TrimSpace(raw)))
}
