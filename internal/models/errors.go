package models

import "fmt"

// ValidationError rejects malformed input before anything is persisted.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func requireText(field, value string) error {
	if value == "" {
		return NewValidationError(field, "field required")
	}
	return nil
}

func requirePositive(field string, value float64) error {
	if value <= 0 {
		return NewValidationError(field, "must be greater than 0")
	}
	return nil
}

func optionalNonNegative(field string, value *float64) error {
	if value != nil && *value < 0 {
		return NewValidationError(field, "must not be negative")
	}
	return nil
}

func requireDate(field string, value Date) error {
	if value.IsZero() {
		return NewValidationError(field, "field required")
	}
	return nil
}
