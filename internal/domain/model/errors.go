package model

import "errors"

// ErrValidation marks user-input errors detected before anything is sent upstream.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the user-facing message for a rejected input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// ErrMissingField reports a required field left blank.
func ErrMissingField(field string) error {
	return &ValidationError{Field: field, Message: "Please fill in all the fields."}
}

// ErrInvalidField reports a field whose value cannot be used.
func ErrInvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
