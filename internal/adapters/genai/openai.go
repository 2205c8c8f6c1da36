package genai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI-compatible defaults
const (
	DefaultOllamaEndpoint = "http://localhost:11434/v1"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultOllamaModel    = "llama3"
)

// OpenAIClient calls any OpenAI-compatible chat completions endpoint,
// including a local Ollama server.
type OpenAIClient struct {
	provider     string
	defaultModel string
	client       *openai.Client
}

// NewOpenAIClient creates a client for OpenAI. An empty endpoint selects
// the public API.
func NewOpenAIClient(token, endpoint string, httpClient *http.Client) *OpenAIClient {
	return newChatCompletionClient("openai", token, endpoint, DefaultOpenAIModel, httpClient)
}

// NewOllamaClient creates a client for a local Ollama server
func NewOllamaClient(endpoint string, httpClient *http.Client) *OpenAIClient {
	if endpoint == "" {
		endpoint = DefaultOllamaEndpoint
	}
	return newChatCompletionClient("ollama", "", endpoint, DefaultOllamaModel, httpClient)
}

func newChatCompletionClient(provider, token, endpoint, defaultModel string, httpClient *http.Client) *OpenAIClient {
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}

	config := openai.DefaultConfig(token)
	if endpoint != "" {
		config.BaseURL = strings.TrimRight(endpoint, "/")
	}
	config.HTTPClient = httpClient

	return &OpenAIClient{
		provider:     provider,
		defaultModel: defaultModel,
		client:       openai.NewClientWithConfig(config),
	}
}

// Provider implements Client.Provider
func (o *OpenAIClient) Provider() string {
	return o.provider
}

// Generate implements Client.Generate
func (o *OpenAIClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = o.defaultModel
	}

	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return "", classifySDKError(ctx, o.provider, err, openAIStatus)
	}

	if len(resp.Choices) == 0 {
		return "", NewProviderError(o.provider, "Generate", http.StatusOK, ErrEmptyResponse, false)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", NewProviderError(o.provider, "Generate", http.StatusOK, ErrEmptyResponse, false)
	}

	return text, nil
}

func openAIStatus(err error) (int, string, bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, apiErr.Message, true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := ""
		if reqErr.Err != nil {
			detail = reqErr.Err.Error()
		}
		return reqErr.HTTPStatusCode, detail, true
	}
	return 0, "", false
}
