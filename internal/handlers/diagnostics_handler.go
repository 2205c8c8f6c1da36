package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"luna-chat-api/internal/models"
	"luna-chat-api/pkg/lambda"
)

// Diagnostic replies
const (
	EventAckMessage = "Hello from test-event function! Event object received. Check logs for details."
	HelloMessage    = "Hello from your ultra-minimal Go function!"
)

// EventHandler logs the inbound event and acknowledges it
type EventHandler struct {
	allowOrigin string
}

// NewEventHandler creates a new event echo handler
func NewEventHandler(allowOrigin string) *EventHandler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return &EventHandler{allowOrigin: allowOrigin}
}

// Handle echoes the event into the logs
func (h *EventHandler) Handle(ctx context.Context, req *lambda.Request) *lambda.Response {
	method := strings.ToUpper(req.Method)

	logrus.WithFields(logrus.Fields{
		"request_id":  req.RequestID,
		"method":      method,
		"path":        req.Path,
		"headers":     req.Headers,
		"query":       req.QueryParams,
		"body_length": len(req.Body),
		"body":        string(req.Body),
	}).Info("Test event received")

	headers := map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": h.allowOrigin,
	}

	if method == http.MethodOptions {
		return &lambda.Response{StatusCode: http.StatusNoContent, Headers: headers}
	}

	if method != http.MethodPost {
		return &lambda.Response{
			StatusCode: http.StatusMethodNotAllowed,
			Headers:    headers,
			Body: encodeJSON(models.ErrorResponse{
				Error: fmt.Sprintf("Method %s Not Allowed (Expected POST)", method),
			}),
		}
	}

	return &lambda.Response{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       encodeJSON(models.EventAck{Message: EventAckMessage}),
	}
}

// Hello answers with a fixed plain-text greeting
func Hello(ctx context.Context, req *lambda.Request) *lambda.Response {
	return &lambda.Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":                "text/plain",
			"Access-Control-Allow-Origin": "*",
		},
		Body: []byte(HelloMessage),
	}
}
