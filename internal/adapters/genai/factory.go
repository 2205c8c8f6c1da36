package genai

import (
	"fmt"
	"net/http"
	"strings"
)

// ProviderType represents the type of text-generation provider
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
	ProviderMock   ProviderType = "mock"
)

// ClientConfig represents configuration for provider clients
type ClientConfig struct {
	Provider   string
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client // shared transport; nil gives each client its own
}

// Factory creates Client instances based on configuration
type Factory struct {
	retryConfig *RetryConfig
}

// NewFactory creates a new client factory
func NewFactory(retryConfig *RetryConfig) *Factory {
	return &Factory{
		retryConfig: retryConfig,
	}
}

// Create creates a Client instance based on the provided configuration
func (f *Factory) Create(config *ClientConfig) (Client, error) {
	if config == nil {
		return nil, fmt.Errorf("client config is required")
	}

	var client Client

	switch ProviderType(strings.ToLower(config.Provider)) {
	case ProviderGemini:
		if config.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		gemini, err := NewGeminiClient(config.APIKey, config.Endpoint, config.HTTPClient)
		if err != nil {
			return nil, err
		}
		client = gemini
	case ProviderOpenAI:
		if config.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		client = NewOpenAIClient(config.APIKey, config.Endpoint, config.HTTPClient)
	case ProviderOllama:
		client = NewOllamaClient(config.Endpoint, config.HTTPClient)
	case ProviderMock:
		client = NewMockClient()
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}

	// Wrap with retry logic if configured
	if f.retryConfig != nil && f.retryConfig.MaxAttempts > 1 {
		client = NewRetryableClient(client, f.retryConfig)
	}

	return client, nil
}
