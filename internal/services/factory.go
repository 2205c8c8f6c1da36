package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"luna-chat-api/internal/adapters/genai"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	ChatService ChatService
	Responder   Responder
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	ResponseMode     string
	MaxMessageLength int
	Blocklist        []string
	AI               *AIConfig
}

// AIConfig holds external responder configuration. A nil AIConfig or a
// disabled one selects the static responder.
type AIConfig struct {
	Enabled       bool
	Provider      string
	APIKey        string
	Model         string
	Endpoint      string
	Timeout       time.Duration
	MaxAttempts   int
	PersonaPrompt string
	HTTPClient    *http.Client
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(config *ServiceConfig) (*ServiceContainer, error) {
	if config == nil {
		config = &ServiceConfig{ResponseMode: ModeGreeting}
	}

	responder, err := NewResponder(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create responder: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"responder": responder.Name(),
	}).Info("Chat responder selected")

	chatService := NewChatService(NewBlocklistFilter(config.Blocklist), responder, config.MaxMessageLength)

	return &ServiceContainer{
		ChatService: chatService,
		Responder:   responder,
	}, nil
}

// NewResponder selects the external responder when AI is enabled and the
// static responder otherwise, so the handler never changes between the two.
func NewResponder(config *ServiceConfig) (Responder, error) {
	if config.AI == nil || !config.AI.Enabled {
		return NewStaticResponder(config.ResponseMode)
	}

	retry := genai.DefaultRetryConfig()
	retry.MaxAttempts = config.AI.MaxAttempts

	client, err := genai.NewFactory(retry).Create(&genai.ClientConfig{
		Provider:   config.AI.Provider,
		APIKey:     config.AI.APIKey,
		Endpoint:   config.AI.Endpoint,
		HTTPClient: config.AI.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", config.AI.Provider, err)
	}

	return NewExternalAIResponder(client, config.AI.Model, config.AI.PersonaPrompt, config.AI.Timeout), nil
}
