// File: internal/services/ai/interface.go
package ai

import "context"

// Provider generates completions for a single prompt. Implementations return
// an *AIError on any failure, including an empty answer.
type Provider interface {
	// GenerateText returns the model's text answer.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateImage returns a displayable image reference: a data URI or a URL.
	GenerateImage(ctx context.Context, prompt string) (string, error)
	Name() string
}
