// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/google/uuid"

	"github.com/iyunix/go-chat/internal/domain"
)

// MessageRepository stores chat messages. Messages are append-only.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) (*domain.ChatMessage, error)
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]domain.ChatMessage, error)
	DeleteBySessionID(ctx context.Context, sessionID uuid.UUID) (int64, error)
}
