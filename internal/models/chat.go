package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidJSON is returned when a request body is not a JSON chat request
var ErrInvalidJSON = errors.New("invalid JSON in request body")

// ChatRequest is the inbound chat payload
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries a reply in the persona's voice
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// EventAck acknowledges a diagnostic event
type EventAck struct {
	Message string `json:"message"`
}

// DecodeChatRequest parses a request body. An absent body, a non-object
// value or a non-string message are all reported as ErrInvalidJSON.
// Only the exact "message" key is read; a null message decodes as empty.
func DecodeChatRequest(body []byte) (*ChatRequest, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("%w: body is empty", ErrInvalidJSON)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	var req ChatRequest
	raw, ok := fields["message"]
	if !ok {
		return &req, nil
	}

	var message *string
	if err := json.Unmarshal(raw, &message); err != nil {
		return nil, fmt.Errorf("%w: message: %v", ErrInvalidJSON, err)
	}
	if message != nil {
		req.Message = *message
	}

	return &req, nil
}

// TrimmedMessage returns the message without surrounding whitespace
func (r *ChatRequest) TrimmedMessage() string {
	return strings.TrimSpace(r.Message)
}
