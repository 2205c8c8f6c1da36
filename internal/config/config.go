package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Response modes understood by the static responder
const (
	ResponseModeGreeting = "greeting"
	ResponseModeEcho     = "echo"
)

// Supported text-generation providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// DefaultPersonaPrompt conditions the tone of generated replies
const DefaultPersonaPrompt = "You are Luna Vale, a wise, witty, pragmatic, and subtly sardonic AI from a " +
	"post-Singularity England. You are guiding users in our pre-Singularity world " +
	"towards happiness using the Five Laws of Happiness. Your responses should be " +
	"insightful, dryly humorous, empathetic, and distinctly British. Encourage " +
	"reflection and personal responsibility. Keep answers concise unless asked for detail."

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Log         LogConfig
	Chat        ChatConfig
	AI          AIConfig
	Server      ServerConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// ChatConfig holds chat handler configuration
type ChatConfig struct {
	ResponseMode     string
	MaxMessageLength int
	AllowOrigin      string
	Blocklist        []string // nil keeps the built-in list
}

// AIConfig holds text-generation provider configuration
type AIConfig struct {
	Provider      string
	APIKey        string
	Model         string
	Endpoint      string
	Timeout       time.Duration
	MaxAttempts   int
	PersonaPrompt string
}

// Enabled reports whether replies should come from the external provider.
// Ollama runs locally and needs no credential.
func (c AIConfig) Enabled() bool {
	return c.APIKey != "" || c.Provider == ProviderOllama
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	MaxBodyBytes int64
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("CHAT_RESPONSE_MODE", ResponseModeGreeting)
	viper.SetDefault("CHAT_MAX_MESSAGE_LENGTH", 2000)
	viper.SetDefault("CORS_ALLOW_ORIGIN", "*")
	viper.SetDefault("AI_PROVIDER", ProviderGemini)
	viper.SetDefault("AI_TIMEOUT", 10*time.Second)
	viper.SetDefault("AI_MAX_ATTEMPTS", 2)
	viper.SetDefault("AI_PERSONA_PROMPT", DefaultPersonaPrompt)
	viper.SetDefault("SERVER_MAX_BODY_BYTES", 64*1024)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Chat: ChatConfig{
			ResponseMode:     strings.ToLower(viper.GetString("CHAT_RESPONSE_MODE")),
			MaxMessageLength: viper.GetInt("CHAT_MAX_MESSAGE_LENGTH"),
			AllowOrigin:      viper.GetString("CORS_ALLOW_ORIGIN"),
			Blocklist:        splitList(viper.GetString("CHAT_BLOCKLIST")),
		},
		AI: AIConfig{
			Provider:      strings.ToLower(viper.GetString("AI_PROVIDER")),
			APIKey:        viper.GetString("AI_API_KEY"),
			Model:         viper.GetString("AI_MODEL"),
			Endpoint:      viper.GetString("AI_ENDPOINT"),
			Timeout:       viper.GetDuration("AI_TIMEOUT"),
			MaxAttempts:   viper.GetInt("AI_MAX_ATTEMPTS"),
			PersonaPrompt: viper.GetString("AI_PERSONA_PROMPT"),
		},
		Server: ServerConfig{
			MaxBodyBytes: viper.GetInt64("SERVER_MAX_BODY_BYTES"),
		},
	}

	// Google's own variable names only count as a Gemini credential
	if config.AI.Provider == ProviderGemini && config.AI.APIKey == "" {
		config.AI.APIKey = firstNonEmpty(viper.GetString("GEMINI_API_KEY"), viper.GetString("GOOGLE_API_KEY"))
	}

	if config.IsProduction() && os.Getenv("LOG_FORMAT") == "" {
		config.Log.Format = "json"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for values the application cannot run with
func (c *Config) Validate() error {
	switch c.Chat.ResponseMode {
	case ResponseModeGreeting, ResponseModeEcho:
	default:
		return fmt.Errorf("invalid CHAT_RESPONSE_MODE %q: must be %q or %q", c.Chat.ResponseMode, ResponseModeGreeting, ResponseModeEcho)
	}

	if c.Chat.MaxMessageLength <= 0 {
		return fmt.Errorf("invalid CHAT_MAX_MESSAGE_LENGTH %d: must be positive", c.Chat.MaxMessageLength)
	}

	switch c.AI.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q", c.AI.Provider)
	}

	if c.AI.Timeout <= 0 {
		return fmt.Errorf("invalid AI_TIMEOUT %s: must be positive", c.AI.Timeout)
	}

	if c.AI.MaxAttempts < 1 {
		c.AI.MaxAttempts = 1
	}

	if c.AI.PersonaPrompt == "" {
		c.AI.PersonaPrompt = DefaultPersonaPrompt
	}

	return nil
}

// IsProduction reports whether the application runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// splitList parses a comma-separated list, returning nil when it is empty
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
