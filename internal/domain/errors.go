package domain

import "errors"

// Sentinel errors used across layers. Configuration problems are kept
// distinct from transient call failures so an operator-fixable condition is
// never reported as a retryable one.
var (
	ErrNotConfigured = errors.New("required credentials are not configured")
	ErrMissingImage  = errors.New("no image provided")
	ErrMissingSender = errors.New("missing sender information")
	ErrEmptyResponse = errors.New("model returned no text content")
)
