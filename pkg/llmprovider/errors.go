package llmprovider

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrRateLimitExceeded indicates the provider rejected every retry with HTTP 429
	ErrRateLimitExceeded = errors.New("provider rate limit exceeded")

	// ErrProviderUnavailable indicates the provider failed for any non-rate-limit
	// reason (5xx, network, persistently malformed payload) after exhausting retries
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedResponse indicates the provider returned a payload that could not
	// be repaired into valid JSON; retried like a transient failure
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrEmptyResponse indicates the provider returned no completion choices
	ErrEmptyResponse = errors.New("empty provider response")
)

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// httpStatusError is implemented by provider client errors that carry
// the HTTP status of the failed upstream call.
type httpStatusError interface {
	HTTPStatus() int
}

// isRateLimited reports whether err was caused by an upstream HTTP 429.
func isRateLimited(err error) bool {
	var se httpStatusError
	return errors.As(err, &se) && se.HTTPStatus() == 429
}
