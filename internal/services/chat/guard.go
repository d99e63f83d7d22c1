// File: internal/services/chat/guard.go
package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iyunix/go-chat/internal/domain"
	"github.com/iyunix/go-chat/internal/repository/session"
)

// requireOwner reads the session fresh and returns it only if userID owns it.
func (s *ChatService) requireOwner(ctx context.Context, operation string, sessionID uuid.UUID, userID string) (*domain.ChatSession, error) {
	row, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, NewNotFoundError(operation)
		}
		s.logger.Error("ownership lookup failed", "operation", operation, "session_id", sessionID, "error", err)
		return nil, NewDependencyError(operation, "failed to load chat session", err)
	}

	if row.UserID != userID {
		s.logger.Warn("ownership check failed",
			"operation", operation,
			"session_id", sessionID,
			"user_id", userID)
		return nil, NewForbiddenError(operation)
	}
	return row, nil
}
