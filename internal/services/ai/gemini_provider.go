// File: internal/services/ai/gemini_provider.go
package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider calls the Gemini API through the genai SDK. Text and image
// requests may use different API keys, so each gets its own client.
type GeminiProvider struct {
	config      *Config
	textClient  *genai.Client
	imageClient *genai.Client
}

func NewGeminiProvider(config *Config, httpClient *http.Client) (*GeminiProvider, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	p := &GeminiProvider{config: config}

	var err error
	if p.textClient, err = newGenaiClient(config, config.GeminiTextKey, httpClient); err != nil {
		return nil, err
	}
	imageKey := config.GeminiImageKey
	if imageKey == "" {
		imageKey = config.GeminiTextKey
	}
	if p.imageClient, err = newGenaiClient(config, imageKey, httpClient); err != nil {
		return nil, err
	}
	return p, nil
}

// newGenaiClient returns nil for an empty key; calls then fail with a config error.
func newGenaiClient(config *Config, apiKey string, httpClient *http.Client) (*genai.Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    config.GeminiBaseURL,
			APIVersion: "v1beta",
		},
	}
	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, &AIError{Type: ErrTypeConfig, Operation: "config", Message: "failed to create gemini client", Cause: err}
	}
	return client, nil
}

func (p *GeminiProvider) Name() string { return ProviderGemini }

func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := p.config.GeminiTextModel
	res, err := p.generate(ctx, p.textClient, "text", model, prompt, nil)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", NewEmptyResponseError("text", model)
	}
	return text, nil
}

// GenerateImage returns the first inline image part as a data URI.
func (p *GeminiProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	model := p.config.GeminiImageModel
	res, err := p.generate(ctx, p.imageClient, "image", model, prompt, &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return "", err
	}

	for _, part := range firstParts(res) {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mime := part.InlineData.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(part.InlineData.Data)), nil
	}
	return "", NewEmptyResponseError("image", model)
}

func (p *GeminiProvider) generate(ctx context.Context, client *genai.Client, operation, model, prompt string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if client == nil {
		return nil, NewConfigError("gemini API key is not set")
	}

	res, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, classifyGeminiError(ctx, operation, model, err)
	}
	return res, nil
}

// classifyGeminiError maps SDK failures onto AIError.
func classifyGeminiError(ctx context.Context, operation, model string, err error) *AIError {
	if apiErr, ok := asAPIError(err); ok {
		aiErr := statusError(operation, model, apiErr.Code, apiErr.Message)
		aiErr.Cause = err
		return aiErr
	}

	var urlErr *url.Error
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &urlErr) {
		return &AIError{Type: ErrTypeNetwork, Operation: operation, Model: model, Message: "request failed", Cause: err}
	}
	return NewProviderError(operation, "gemini request failed", err)
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

func firstParts(res *genai.GenerateContentResponse) []*genai.Part {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0] == nil || res.Candidates[0].Content == nil {
		return nil
	}
	return res.Candidates[0].Content.Parts
}
