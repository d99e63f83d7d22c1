// File: internal/repository/session/interface.go
package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/iyunix/go-chat/internal/domain"
)

// Repository handles chat session rows. Every mutating call is filtered by owner.
type Repository interface {
	Create(ctx context.Context, session *domain.ChatSession) (*domain.ChatSession, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.ChatSession, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, userID, title string) (*domain.ChatSession, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}
