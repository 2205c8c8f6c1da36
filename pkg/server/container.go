package server

import (
	"fmt"
	"net/http"

	"luna-chat-api/internal/adapters/genai"
	"luna-chat-api/internal/config"
	"luna-chat-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	ChatService services.ChatService

	// Internal dependencies
	services   *services.ServiceContainer
	httpClient *http.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	httpClient := genai.NewHTTPClient()

	serviceConfig := &services.ServiceConfig{
		ResponseMode:     cfg.Chat.ResponseMode,
		MaxMessageLength: cfg.Chat.MaxMessageLength,
		Blocklist:        cfg.Chat.Blocklist,
		AI: &services.AIConfig{
			Enabled:       cfg.AI.Enabled(),
			Provider:      cfg.AI.Provider,
			APIKey:        cfg.AI.APIKey,
			Model:         cfg.AI.Model,
			Endpoint:      cfg.AI.Endpoint,
			Timeout:       cfg.AI.Timeout,
			MaxAttempts:   cfg.AI.MaxAttempts,
			PersonaPrompt: cfg.AI.PersonaPrompt,
			HTTPClient:    httpClient,
		},
	}

	serviceContainer, err := services.NewServiceContainer(serviceConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	return &Container{
		Config:      cfg,
		ChatService: serviceContainer.ChatService,
		services:    serviceContainer,
		httpClient:  httpClient,
	}, nil
}

// ResponderName reports which responder answers chat messages
func (c *Container) ResponderName() string {
	return c.services.Responder.Name()
}

// Close releases the idle provider connections
func (c *Container) Close() error {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
	return nil
}
