package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// maxErrorDetail bounds how much of a provider error message is kept for logs
const maxErrorDetail = 512

// NewHTTPClient returns the transport shared by provider SDK clients.
// Per-call deadlines come from ctx; this timeout is only a backstop.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}

// statusFunc extracts an HTTP status and message from an SDK API error
type statusFunc func(err error) (status int, detail string, ok bool)

// classifySDKError maps an error returned by a provider SDK onto ProviderError
func classifySDKError(ctx context.Context, provider string, err error, status statusFunc) *ProviderError {
	if code, detail, ok := status(err); ok {
		if len(detail) > maxErrorDetail {
			detail = detail[:maxErrorDetail]
		}
		return errorForStatus(provider, code, detail)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return NewProviderError(provider, "Generate", 0, fmt.Errorf("%w: %v", ErrInvalidResponse, err), false)
	}

	return errorForTransport(ctx, provider, err)
}
