package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidBody  = errors.New("invalid JSON body")
)

// Client-facing error messages.
const (
	msgInvalidBody   = "Invalid JSON body."
	msgInvalidFormat = "Invalid format for gwp, circularity, or cost."
	msgInternal      = "Internal server error."
	msgUnavailable   = "Service unavailable."
)

// missingFieldError names the first required key absent from a request.
type missingFieldError struct {
	field string
}

func (e *missingFieldError) Error() string { return "Missing field: " + e.field }

func (e *missingFieldError) Unwrap() error { return ErrMissingField }
