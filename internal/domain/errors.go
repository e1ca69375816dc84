package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the query planner and search flow.
var (
	// ErrInvalidRequest marks a SearchIntent that failed input validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoCombinations marks an intent whose cross-product was pruned down to nothing,
	// e.g. every origin equals its only destination.
	ErrNoCombinations = errors.New("no valid query combinations")

	// ErrTooManyCombinations marks an intent that expands beyond the configured query cap.
	ErrTooManyCombinations = errors.New("too many query combinations")

	// ErrGenerationFailed wraps unexpected internal failures during query generation.
	ErrGenerationFailed = errors.New("query generation failed")

	// ErrAllProvidersFailed is returned when no provider answered any query.
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrProviderTimeout marks a provider that did not answer before its deadline.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderUnavailable marks a provider that cannot serve requests at all.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrCacheNotFound is returned when a named cache instance does not exist.
	ErrCacheNotFound = errors.New("cache not found")
)

// ValidationError is the single error kind produced by the query planner.
// Field names the offending input, Value carries it when one exists, and Err is
// one of ErrInvalidRequest, ErrNoCombinations, ErrTooManyCombinations or ErrGenerationFailed.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for a bad input field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: ErrInvalidRequest}
}

// NewInvalidValueError creates a ValidationError naming the offending value.
func NewInvalidValueError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message, Err: ErrInvalidRequest}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ProviderError wraps a failure reported by a single flight provider.
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

// NewProviderError creates a non-retryable ProviderError.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableProviderError creates a ProviderError that the search flow may retry.
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}

// NewProviderTimeoutError creates a retryable timeout error for the provider.
func NewProviderTimeoutError(provider string) *ProviderError {
	return NewRetryableProviderError(provider, ErrProviderTimeout)
}

// NewProviderUnavailableError creates a non-retryable unavailability error for the provider.
func NewProviderUnavailableError(provider string) *ProviderError {
	return NewProviderError(provider, ErrProviderUnavailable)
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsInvalidRequest reports whether err is an input validation failure.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsNoCombinations reports whether err signals an unsatisfiable intent.
func IsNoCombinations(err error) bool {
	return errors.Is(err, ErrNoCombinations)
}

// IsAllProvidersFailed reports whether err signals that every provider failed.
func IsAllProvidersFailed(err error) bool {
	return errors.Is(err, ErrAllProvidersFailed)
}

// IsProviderTimeout reports whether err is a provider timeout.
func IsProviderTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

// IsRetryable reports whether err is a ProviderError flagged as retryable.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
