package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// GetValidator returns the shared validator instance.
func GetValidator() *Validator {
	if validate == nil {
		validate = &Validator{validate: validator.New()}
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError flattens validation errors into a single message
// without leaking internal struct names.
func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ErrMsgInvalidRequest
	}

	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email", field))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s characters", field, e.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", field))
		}
	}

	if len(parts) == 0 {
		return ErrMsgInvalidRequest
	}
	return strings.Join(parts, "; ")
}
