package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Common provider error types
var (
	ErrUnauthorized        = errors.New("provider rejected credentials")
	ErrQuotaExceeded       = errors.New("provider quota exceeded")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrNetwork             = errors.New("network error")
	ErrTimeout             = errors.New("operation timeout")
	ErrEmptyResponse       = errors.New("provider returned no text")
	ErrInvalidResponse     = errors.New("provider returned an invalid response")
	ErrBadRequest          = errors.New("provider rejected request")
)

// ProviderError represents a failed provider call with additional context
type ProviderError struct {
	Provider   string // Provider that failed (e.g., "gemini")
	Op         string // Operation that failed (e.g., "Generate")
	StatusCode int    // HTTP status, zero when no response arrived
	Err        error  // Underlying error
	Retryable  bool   // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s failed with status %d: %v", e.Provider, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error indicates a retryable condition
func (e *ProviderError) IsRetryable() bool {
	return e.Retryable
}

// NewProviderError creates a new ProviderError
func NewProviderError(provider, op string, statusCode int, err error, retryable bool) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Op:         op,
		StatusCode: statusCode,
		Err:        err,
		Retryable:  retryable,
	}
}

// errorForStatus maps a non-2xx provider status to a ProviderError.
// detail is the (truncated) response body and is kept for logs only.
func errorForStatus(provider string, status int, detail string) *ProviderError {
	var base error
	retryable := false

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		base = ErrUnauthorized
	case status == http.StatusTooManyRequests:
		base = ErrQuotaExceeded
		retryable = true
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		base = ErrTimeout
		retryable = true
	case status >= 500:
		base = ErrProviderUnavailable
		retryable = true
	default:
		base = ErrBadRequest
	}

	if detail != "" {
		base = fmt.Errorf("%w: %s", base, detail)
	}

	return NewProviderError(provider, "Generate", status, base, retryable)
}

// errorForTransport classifies an error returned by http.Client.Do
func errorForTransport(ctx context.Context, provider string, err error) *ProviderError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewProviderError(provider, "Generate", 0, fmt.Errorf("%w: %v", ErrTimeout, err), true)
	}
	if errors.Is(err, context.Canceled) {
		return NewProviderError(provider, "Generate", 0, err, false)
	}
	return NewProviderError(provider, "Generate", 0, fmt.Errorf("%w: %v", ErrNetwork, err), true)
}

// IsRetryable returns true if the error indicates a retryable condition
func IsRetryable(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.IsRetryable()
	}

	// Check for common retryable errors
	return errors.Is(err, ErrProviderUnavailable) ||
		errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrNetwork) ||
		errors.Is(err, ErrTimeout)
}

// IsAuthError returns true if the provider rejected the credential
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
