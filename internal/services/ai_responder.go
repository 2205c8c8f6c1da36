package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"luna-chat-api/internal/adapters/genai"
)

// ExternalAIResponder asks a text-generation provider for the reply,
// conditioned on a fixed persona prompt.
type ExternalAIResponder struct {
	client  genai.Client
	model   string
	persona string
	timeout time.Duration
}

// NewExternalAIResponder creates a new ExternalAIResponder
func NewExternalAIResponder(client genai.Client, model, persona string, timeout time.Duration) *ExternalAIResponder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ExternalAIResponder{
		client:  client,
		model:   model,
		persona: persona,
		timeout: timeout,
	}
}

// Respond implements Responder.Respond
func (r *ExternalAIResponder) Respond(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	text, err := r.client.Generate(ctx, genai.GenerateRequest{
		Model:        r.model,
		SystemPrompt: r.persona,
		Prompt:       message,
	})

	fields := logrus.Fields{
		"provider":   r.client.Provider(),
		"model":      r.model,
		"latency_ms": time.Since(start).Milliseconds(),
	}

	if err != nil {
		fields["error"] = err.Error()
		fields["auth_error"] = genai.IsAuthError(err)
		logrus.WithFields(fields).Error("Text generation failed")
		return "", fmt.Errorf("generate reply: %w", err)
	}

	logrus.WithFields(fields).Debug("Text generation succeeded")
	return text, nil
}

// Name implements Responder.Name
func (r *ExternalAIResponder) Name() string {
	return "ai-" + r.client.Provider()
}
