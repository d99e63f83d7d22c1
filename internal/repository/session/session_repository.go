// File: internal/repository/session/session_repository.go
package session

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iyunix/go-chat/internal/domain"
	"github.com/iyunix/go-chat/internal/logger"
)

var ErrSessionNotFound = errors.New("chat session not found")

// MaxTitleLength is the longest title the table accepts, in characters.
const MaxTitleLength = 100

type gormSessionRepository struct {
	db  *gorm.DB
	log logger.Logger
}

func NewSessionRepository(db *gorm.DB, log logger.Logger) Repository {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &gormSessionRepository{db: db, log: log}
}

// Create inserts a new session; id and created_at are filled in by the model hook.
func (r *gormSessionRepository) Create(ctx context.Context, session *domain.ChatSession) (*domain.ChatSession, error) {
	if err := validateSessionInput(session); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		r.log.Error("database error creating session", "user_id", session.UserID, "error", err)
		return nil, fmt.Errorf("database error creating session: %w", err)
	}

	r.log.Debug("session created", "session_id", session.ID, "user_id", session.UserID)
	return session, nil
}

func (r *gormSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	if id == uuid.Nil {
		return nil, ErrSessionNotFound
	}

	var session domain.ChatSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		r.log.Error("database error finding session", "session_id", id, "error", err)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &session, nil
}

// FindByUserID returns the owner's sessions, newest first.
func (r *gormSessionRepository) FindByUserID(ctx context.Context, userID string) ([]domain.ChatSession, error) {
	if userID == "" {
		return nil, errors.New("invalid user ID")
	}

	sessions := []domain.ChatSession{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&sessions).Error
	if err != nil {
		r.log.Error("database error listing sessions", "user_id", userID, "error", err)
		return nil, fmt.Errorf("database error fetching sessions: %w", err)
	}
	return sessions, nil
}

// UpdateTitle renames a session only where both id and owner match.
func (r *gormSessionRepository) UpdateTitle(ctx context.Context, id uuid.UUID, userID, title string) (*domain.ChatSession, error) {
	if err := validateTitle(title); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&domain.ChatSession{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("title", title)
	if result.Error != nil {
		r.log.Error("database error renaming session", "session_id", id, "error", result.Error)
		return nil, fmt.Errorf("database error renaming session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrSessionNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the session row where both id and owner match.
func (r *gormSessionRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	if id == uuid.Nil || userID == "" {
		return errors.New("invalid session ID or user ID")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.ChatSession{})
	if result.Error != nil {
		r.log.Error("database error deleting session", "session_id", id, "error", result.Error)
		return fmt.Errorf("database error deleting session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func validateSessionInput(session *domain.ChatSession) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	if session.UserID == "" {
		return errors.New("user ID is required")
	}
	return validateTitle(session.Title)
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n == 0 {
		return errors.New("title is required")
	}
	if n > MaxTitleLength {
		return fmt.Errorf("title must be %d characters or less", MaxTitleLength)
	}
	return nil
}
