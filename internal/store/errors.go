package store

import "errors"

// ValidationError is a local, pre-network, field-scoped rejection. It is
// surfaced next to the offending field and never reaches the backend; it
// also never mutates a store's request-error state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
