package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"luna-chat-api/internal/models"
)

// ErrResponderFailed marks a failure to produce a reply
var ErrResponderFailed = errors.New("responder failed")

// chatService implements ChatService
type chatService struct {
	filter           ContentFilter
	responder        Responder
	maxMessageLength int
}

// NewChatService creates a new chat service
func NewChatService(filter ContentFilter, responder Responder, maxMessageLength int) ChatService {
	return &chatService{
		filter:           filter,
		responder:        responder,
		maxMessageLength: maxMessageLength,
	}
}

// Reply implements ChatService.Reply
func (s *chatService) Reply(ctx context.Context, message string) (*ChatResult, error) {
	message = strings.TrimSpace(message)

	if err := models.ValidateMessage(message, s.maxMessageLength); err != nil {
		return nil, err
	}

	if term, blocked := s.filter.Match(message); blocked {
		logrus.WithFields(logrus.Fields{
			"term": term,
		}).Info("Message blocked by filter")

		return &ChatResult{
			Text:      BlockedReply,
			Blocked:   true,
			Responder: "blocklist",
		}, nil
	}

	text, err := s.responder.Respond(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResponderFailed, s.responder.Name(), err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s returned empty text", ErrResponderFailed, s.responder.Name())
	}

	return &ChatResult{
		Text:      text,
		Responder: s.responder.Name(),
	}, nil
}

// ResponderName implements ChatService.ResponderName
func (s *chatService) ResponderName() string {
	return s.responder.Name()
}
