// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"net/http"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Provider string

	// Gemini
	GeminiTextKey    string
	GeminiImageKey   string
	GeminiBaseURL    string // empty uses the SDK default endpoint
	GeminiTextModel  string
	GeminiImageModel string

	// OpenAI-compatible
	OpenAIKey        string
	OpenAIBaseURL    string
	OpenAITextModel  string
	OpenAIImageModel string

	// Upper bound for one HTTP exchange.
	HTTPTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Provider:         ProviderGemini,
		GeminiTextModel:  "gemini-2.0-flash",
		GeminiImageModel: "gemini-2.0-flash-preview-image-generation",
		OpenAITextModel:  "gpt-4o-mini",
		OpenAIImageModel: "dall-e-3",
		HTTPTimeout:      2 * time.Minute,
	}
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiTextModel == "" || c.GeminiImageModel == "" {
			return fmt.Errorf("gemini text and image models are required")
		}
	case ProviderOpenAI:
		if c.OpenAITextModel == "" || c.OpenAIImageModel == "" {
			return fmt.Errorf("openai text and image models are required")
		}
	default:
		return NewConfigError(fmt.Sprintf("unknown provider %q", c.Provider))
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(cfg *Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	if cfg.Provider == ProviderOpenAI {
		return NewOpenAIProvider(cfg, httpClient), nil
	}
	gemini, err := NewGeminiProvider(cfg, httpClient)
	if err != nil {
		return nil, err
	}
	return gemini, nil
}
