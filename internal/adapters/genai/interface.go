package genai

import (
	"context"
)

// GenerateRequest describes a single-turn text generation call
type GenerateRequest struct {
	Model        string `json:"model"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	Prompt       string `json:"prompt"`
}

// Client provides an abstraction over text-generation providers.
// Implementations must honour ctx cancellation and deadlines.
type Client interface {
	// Generate sends the prompt and returns the generated text
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// Provider names the backing service, e.g. "gemini"
	Provider() string
}
