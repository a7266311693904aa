package loadtest

import "errors"

// Sentinel kinds for load test failures.
var (
	ErrUnhealthy    = errors.New("service unhealthy")
	ErrNoProducts   = errors.New("no products to submit")
	ErrVerification = errors.New("verification failed")
)
