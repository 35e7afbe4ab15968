package helpers

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationFieldError represents a single field validation error
type ValidationFieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors extracts a field->message map from a validator error.
// Returns nil when the error is not a validation error.
func FieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = messageForTag(fe)
	}
	return fields
}

// messageForTag maps a failed validation tag to a user-facing message
func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "value is too short (minimum " + fe.Param() + ")"
	case "max":
		return "value is too long (maximum " + fe.Param() + ")"
	case "time_of_day":
		return "must be a time in HH:MM format"
	case "iana_timezone":
		return "must be a valid IANA time zone identifier"
	case "intake_status":
		return "must be either taken or skipped"
	default:
		return "invalid value"
	}
}

// MergeValidationErrors merges multiple validation error maps
func MergeValidationErrors(errors ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, errs := range errors {
		for field, msg := range errs {
			result[field] = msg
		}
	}
	return result
}
