package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"luna-chat-api/internal/models"
	"luna-chat-api/internal/services"
)

// ErrorKind names a handled failure path
type ErrorKind string

const (
	KindMethodNotAllowed ErrorKind = "method_not_allowed"
	KindInvalidJSON      ErrorKind = "invalid_json"
	KindEmptyMessage     ErrorKind = "empty_message"
	KindMessageTooLong   ErrorKind = "message_too_long"
	KindResponderFailure ErrorKind = "responder_failure"
	KindInternal         ErrorKind = "internal"
)

// Caller-facing error texts
const (
	MethodNotAllowedMessage = "Method Not Allowed. Please use POST."
	InvalidJSONMessage      = "Invalid JSON in request body."
	ResponderFailureMessage = "Oh dear, it seems Luna is having a slight technical hiccup. My apologies."
	InternalErrorMessage    = "An unexpected error occurred. Luna is momentarily perplexed."
)

// ChatError is a failure already shaped for the caller
type ChatError struct {
	Kind   ErrorKind
	Status int
	Body   interface{}
	Cause  error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%d): %v", e.Kind, e.Status, e.Cause)
	}
	return fmt.Sprintf("%s (%d)", e.Kind, e.Status)
}

func (e *ChatError) Unwrap() error {
	return e.Cause
}

// ErrorResponse represents a standard error response
type ErrorResponse = models.ErrorResponse

func errMethodNotAllowed() *ChatError {
	return &ChatError{
		Kind:   KindMethodNotAllowed,
		Status: http.StatusMethodNotAllowed,
		Body:   ErrorResponse{Error: MethodNotAllowedMessage},
	}
}

func errInternal(cause error) *ChatError {
	return &ChatError{
		Kind:   KindInternal,
		Status: http.StatusInternalServerError,
		Body:   ErrorResponse{Error: InternalErrorMessage},
		Cause:  cause,
	}
}

// classifyError maps a decode or service error to its caller-facing shape.
// The empty-message case stays in character and uses the response field.
func classifyError(err error) *ChatError {
	var chatErr *ChatError
	switch {
	case errors.As(err, &chatErr):
		return chatErr
	case errors.Is(err, models.ErrInvalidJSON):
		return &ChatError{
			Kind:   KindInvalidJSON,
			Status: http.StatusBadRequest,
			Body:   ErrorResponse{Error: InvalidJSONMessage},
			Cause:  err,
		}
	case errors.Is(err, models.ErrEmptyMessage):
		return &ChatError{
			Kind:   KindEmptyMessage,
			Status: http.StatusBadRequest,
			Body:   models.ChatResponse{Response: services.EmptyMessageReply},
			Cause:  err,
		}
	case errors.Is(err, models.ErrMessageTooLong):
		return &ChatError{
			Kind:   KindMessageTooLong,
			Status: http.StatusBadRequest,
			Body:   ErrorResponse{Error: tooLongMessage(err)},
			Cause:  err,
		}
	case errors.Is(err, services.ErrResponderFailed):
		return &ChatError{
			Kind:   KindResponderFailure,
			Status: http.StatusInternalServerError,
			Body:   ErrorResponse{Error: ResponderFailureMessage},
			Cause:  err,
		}
	default:
		return errInternal(err)
	}
}

func tooLongMessage(err error) string {
	var lengthErr *models.LengthError
	if errors.As(err, &lengthErr) {
		return fmt.Sprintf("Message is too long. Please keep it under %d characters.", lengthErr.Limit)
	}
	return "Message is too long."
}
