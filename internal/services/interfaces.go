package services

import (
	"context"
)

// Responder produces the reply text for an accepted chat message.
// Implementations range from canned strings to an external model.
type Responder interface {
	Respond(ctx context.Context, message string) (string, error)
	Name() string
}

// ContentFilter decides whether a message is refused with a scripted reply
type ContentFilter interface {
	// Match returns the first blocked term found in message, if any
	Match(message string) (string, bool)
}

// ChatService defines the interface for chat business logic operations
type ChatService interface {
	// Reply validates message, applies the content filter and asks the responder.
	// Validation failures are models.ErrEmptyMessage or models.ErrMessageTooLong;
	// responder failures wrap ErrResponderFailed.
	Reply(ctx context.Context, message string) (*ChatResult, error)

	// ResponderName reports which responder backs the service
	ResponderName() string
}

// ChatResult is the outcome of an accepted chat message
type ChatResult struct {
	Text      string
	Blocked   bool
	Responder string
}
