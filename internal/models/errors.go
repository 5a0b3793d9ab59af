package models

import "fmt"

// ValidationError reports a malformed or missing field on a record or form
// submission. Nothing is persisted when construction fails with one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
