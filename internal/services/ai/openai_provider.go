// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider serves OpenAI and OpenAI-compatible endpoints.
type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config, httpClient *http.Client) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}
	if httpClient != nil {
		clientConfig.HTTPClient = httpClient
	}
	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

func (p *OpenAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.config.OpenAITextModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", NewProviderError("text", "failed to create completion", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", NewEmptyResponseError("text", p.config.OpenAITextModel)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateImage requests base64 output and returns it as a data URI.
func (p *OpenAIProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          p.config.OpenAIImageModel,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", NewProviderError("image", "failed to create image", err)
	}

	if len(resp.Data) == 0 {
		return "", NewEmptyResponseError("image", p.config.OpenAIImageModel)
	}
	if b64 := resp.Data[0].B64JSON; b64 != "" {
		return "data:image/png;base64," + b64, nil
	}
	if url := resp.Data[0].URL; url != "" {
		return url, nil
	}
	return "", NewEmptyResponseError("image", p.config.OpenAIImageModel)
}
