package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrClosed            = errors.New("store closed")
)
