// Package provider implements embedding generation against
// OpenAI-compatible APIs.
package provider

import "errors"

// ErrNotConfigured indicates the embedding provider has no API key.
var ErrNotConfigured = errors.New("embedding provider not configured")

// ErrDimensionMismatch indicates the API returned a vector of unexpected
// length. Not retryable: the model is misconfigured, not overloaded.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// errEmbeddingCountMismatch indicates the API returned fewer embedding
// vectors than requested. Retryable because transient upstream issues can
// produce partial responses behind a 200 status.
var errEmbeddingCountMismatch = errors.New("embedding response count mismatch")

// ProviderError wraps provider errors with additional context.
type ProviderError struct {
	operation  string
	statusCode int
	message    string
	cause      error
}

// NewProviderError creates a new ProviderError.
func NewProviderError(operation string, statusCode int, message string, cause error) *ProviderError {
	return &ProviderError{
		operation:  operation,
		statusCode: statusCode,
		message:    message,
		cause:      cause,
	}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.cause
}

// Operation returns the operation that failed.
func (e *ProviderError) Operation() string { return e.operation }

// StatusCode returns the HTTP status code if available.
func (e *ProviderError) StatusCode() int { return e.statusCode }

// IsRateLimited returns true if the error is due to rate limiting.
func (e *ProviderError) IsRateLimited() bool {
	return e.statusCode == 429
}
