// File: internal/services/chat/interface.go
package chat

import (
	"context"

	"github.com/iyunix/go-chat/internal/domain"
)

// Service is the access-controlled surface over sessions and messages.
// userID is always the identity resolved for the request, never caller input.
type Service interface {
	ListSessions(ctx context.Context, userID string) ([]domain.ChatSession, error)
	CreateSession(ctx context.Context, userID string, in CreateSessionInput) (*domain.ChatSession, error)
	RenameSession(ctx context.Context, userID string, in RenameSessionInput) (*domain.ChatSession, error)
	DeleteSession(ctx context.Context, userID string, in SessionInput) (*Success, error)
	ListMessages(ctx context.Context, userID string, in SessionInput) ([]domain.ChatMessage, error)
	SendTextMessage(ctx context.Context, userID string, in PromptInput) (*TextResult, error)
	GenerateImage(ctx context.Context, userID string, in PromptInput) (*ImageResult, error)
}
