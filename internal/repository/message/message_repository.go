// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iyunix/go-chat/internal/domain"
	"github.com/iyunix/go-chat/internal/logger"
)

type gormMessageRepository struct {
	db  *gorm.DB
	log logger.Logger
}

func NewMessageRepository(db *gorm.DB, log logger.Logger) MessageRepository {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &gormMessageRepository{db: db, log: log}
}

// Create appends a message. Content is never logged, only its length.
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.ChatMessage) (*domain.ChatMessage, error) {
	if err := validateMessageInput(message); err != nil {
		r.log.Warn("message validation failed", "error", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		r.log.Error("database error creating message",
			"session_id", message.SessionID,
			"role", message.Role,
			"error", err)
		return nil, fmt.Errorf("database error creating message: %w", err)
	}

	r.log.Debug("message created",
		"message_id", message.ID,
		"session_id", message.SessionID,
		"type", message.Type,
		"content_length", len(message.Content))
	return message, nil
}

// FindBySessionID returns the session's messages, oldest first.
func (r *gormMessageRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]domain.ChatMessage, error) {
	if sessionID == uuid.Nil {
		return nil, errors.New("invalid session ID")
	}

	messages := []domain.ChatMessage{}
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		r.log.Error("database error listing messages", "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("database error fetching messages: %w", err)
	}
	return messages, nil
}

// DeleteBySessionID removes every message in a session and reports how many
// went. Callers establish session ownership first.
func (r *gormMessageRepository) DeleteBySessionID(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	if sessionID == uuid.Nil {
		return 0, errors.New("invalid session ID")
	}

	result := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&domain.ChatMessage{})
	if result.Error != nil {
		r.log.Error("database error deleting messages", "session_id", sessionID, "error", result.Error)
		return 0, fmt.Errorf("database error deleting messages: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func validateMessageInput(message *domain.ChatMessage) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}
	if message.SessionID == uuid.Nil {
		return errors.New("session ID is required")
	}
	if message.UserID == "" {
		return errors.New("user ID is required")
	}
	if !message.Role.Valid() {
		return fmt.Errorf("invalid role %q", message.Role)
	}
	if !message.Type.Valid() {
		return fmt.Errorf("invalid message type %q", message.Type)
	}
	return nil
}
