package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gogenai "google.golang.org/genai"
)

// Gemini defaults
const (
	DefaultGeminiModel = "gemini-1.5-flash-latest"
)

// GeminiClient calls Gemini generateContent through the Google Gen AI SDK
type GeminiClient struct {
	models *gogenai.Models
}

// NewGeminiClient creates a new GeminiClient. An empty endpoint selects the
// public API; a nil httpClient selects a client with a backstop timeout.
func NewGeminiClient(apiKey, endpoint string, httpClient *http.Client) (*GeminiClient, error) {
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}

	config := &gogenai.ClientConfig{
		APIKey:     apiKey,
		Backend:    gogenai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if endpoint != "" {
		config.HTTPOptions = gogenai.HTTPOptions{BaseURL: strings.TrimRight(endpoint, "/") + "/"}
	}

	client, err := gogenai.NewClient(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{models: client.Models}, nil
}

// Provider implements Client.Provider
func (g *GeminiClient) Provider() string {
	return "gemini"
}

// Generate implements Client.Generate
func (g *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	contents := []*gogenai.Content{
		{Role: "user", Parts: []*gogenai.Part{{Text: req.Prompt}}},
	}

	var config *gogenai.GenerateContentConfig
	if req.SystemPrompt != "" {
		config = &gogenai.GenerateContentConfig{
			SystemInstruction: &gogenai.Content{Parts: []*gogenai.Part{{Text: req.SystemPrompt}}},
		}
	}

	resp, err := g.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", classifySDKError(ctx, g.Provider(), err, geminiStatus)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			err := fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyResponse, resp.PromptFeedback.BlockReason)
			return "", NewProviderError(g.Provider(), "Generate", http.StatusOK, err, false)
		}
		return "", NewProviderError(g.Provider(), "Generate", http.StatusOK, ErrEmptyResponse, false)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", NewProviderError(g.Provider(), "Generate", http.StatusOK, ErrEmptyResponse, false)
	}

	return text, nil
}

func geminiStatus(err error) (int, string, bool) {
	var apiErr gogenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Message, true
	}
	return 0, "", false
}
