// File: internal/services/chat/types.go
package chat

import "github.com/iyunix/go-chat/internal/domain"

type CreateSessionInput struct {
	Title *string `json:"title,omitempty" validate:"omitempty,max=100"`
}

type RenameSessionInput struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
	NewTitle  string `json:"newTitle" validate:"required,min=1,max=100"`
}

type SessionInput struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
}

type PromptInput struct {
	Prompt    string `json:"prompt" validate:"required,max=10000"`
	SessionID string `json:"sessionId" validate:"required,uuid"`
}

type Success struct {
	Success bool `json:"success"`
}

type TextResult struct {
	Success     bool                `json:"success"`
	UserMessage *domain.ChatMessage `json:"userMessage"`
	AIMessage   *domain.ChatMessage `json:"aiMessage"`
}

type ImageResult struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}
