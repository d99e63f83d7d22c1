// File: internal/services/chat/service.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iyunix/go-chat/internal/domain"
	"github.com/iyunix/go-chat/internal/logger"
	"github.com/iyunix/go-chat/internal/repository/message"
	"github.com/iyunix/go-chat/internal/repository/session"
	"github.com/iyunix/go-chat/internal/repository/unitofwork"
	"github.com/iyunix/go-chat/internal/services/ai"
)

// ChatService implements Service. Every method resolves identity, then
// validates input, then checks ownership, and only then touches storage.
type ChatService struct {
	config   *Config
	sessions session.Repository
	messages message.MessageRepository
	uow      unitofwork.Factory
	provider ai.Provider
	validate *validator.Validate
	logger   logger.Logger
}

var _ Service = (*ChatService)(nil)

func NewChatService(
	config *Config,
	sessions session.Repository,
	messages message.MessageRepository,
	uow unitofwork.Factory,
	provider ai.Provider,
	log logger.Logger,
) *ChatService {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &ChatService{
		config:   config,
		sessions: sessions,
		messages: messages,
		uow:      uow,
		provider: provider,
		validate: newValidator(),
		logger:   log,
	}
}

func (s *ChatService) ListSessions(ctx context.Context, userID string) ([]domain.ChatSession, error) {
	const op = "listSessions"
	if userID == "" {
		return nil, NewUnauthorizedError(op)
	}

	sessions, err := s.sessions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, NewDependencyError(op, "failed to load chat sessions", err)
	}
	return sessions, nil
}

func (s *ChatService) CreateSession(ctx context.Context, userID string, in CreateSessionInput) (*domain.ChatSession, error) {
	const op = "createSession"
	if userID == "" {
		return nil, NewUnauthorizedError(op)
	}

	title := domain.DefaultSessionTitle
	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		in.Title = &trimmed
		if err := s.check(op, in); err != nil {
			return nil, err
		}
		if trimmed != "" {
			title = trimmed
		}
	}

	created, err := s.sessions.Create(ctx, &domain.ChatSession{UserID: userID, Title: title})
	if err != nil {
		return nil, NewDependencyError(op, "failed to create chat session", err)
	}

	s.logger.Info("chat session created", "session_id", created.ID, "user_id", userID)
	return created, nil
}

func (s *ChatService) RenameSession(ctx context.Context, userID string, in RenameSessionInput) (*domain.ChatSession, error) {
	const op = "renameSession"
	if userID == "" {
		return nil, NewUnauthorizedError(op)
	}
	in.NewTitle = strings.TrimSpace(in.NewTitle)
	if err := s.check(op, in); err != nil {
		return nil, err
	}
	sessionID, err := parseSessionID(op, in.SessionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireOwner(ctx, op, sessionID, userID); err != nil {
		return nil, err
	}

	updated, err := s.sessions.UpdateTitle(ctx, sessionID, userID, in.NewTitle)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, NewNotFoundError(op)
		}
		return nil, NewDependencyError(op, "failed to rename chat session", err)
	}
	return updated, nil
}

// DeleteSession removes the session and its messages in one transaction.
func (s *ChatService) DeleteSession(ctx context.Context, userID string, in SessionInput) (*Success, error) {
	const op = "deleteSession"
	if userID == "" {
		return nil, NewUnauthorizedError(op)
	}
	if err := s.check(op, in); err != nil {
		return nil, err
	}
	sessionID, err := parseSessionID(op, in.SessionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireOwner(ctx, op, sessionID, userID); err != nil {
		return nil, err
	}

	uow := s.uow.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, NewDependencyError(op, "failed to start transaction", err)
	}

	removed, err := uow.MessageRepository().DeleteBySessionID(ctx, sessionID)
	if err != nil {
		s.rollback(uow, op)
		return nil, NewDependencyError(op, "failed to delete messages", err)
	}

	if err := uow.SessionRepository().Delete(ctx, sessionID, userID); err != nil {
		s.rollback(uow, op)
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, NewNotFoundError(op)
		}
		return nil, NewDependencyError(op, "failed to delete chat session", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, NewDependencyError(op, "failed to commit delete", err)
	}

	s.logger.Info("chat session deleted", "session_id", sessionID, "user_id", userID, "messages_removed", removed)
	return &Success{Success: true}, nil
}

func (s *ChatService) ListMessages(ctx context.Context, userID string, in SessionInput) ([]domain.ChatMessage, error) {
	const op = "listMessages"
	if userID == "" {
		return nil, NewUnauthorizedError(op)
	}
	if err := s.check(op, in); err != nil {
		return nil, err
	}
	sessionID, err := parseSessionID(op, in.SessionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireOwner(ctx, op, sessionID, userID); err != nil {
		return nil, err
	}

	messages, err := s.messages.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, NewDependencyError(op, "failed to load messages", err)
	}

	// Session and message ownership must agree.
	for _, m := range messages {
		if m.UserID != userID {
			s.logger.Error("message owner does not match session owner",
				"session_id", sessionID,
				"message_id", m.ID,
				"user_id", userID)
			return nil, NewForbiddenError(op)
		}
	}
	return messages, nil
}

func (s *ChatService) rollback(uow unitofwork.UnitOfWork, op string) {
	if err := uow.Rollback(); err != nil {
		s.logger.Error("rollback failed", "operation", op, "error", err)
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func parseSessionID(op, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, NewValidationError(op, "sessionId must be a valid UUID")
	}
	return id, nil
}

// check runs struct validation and turns the first failure into a ValidationError.
func (s *ChatService) check(op string, in interface{}) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return NewValidationError(op, describe(verrs[0]))
	}
	return NewValidationError(op, err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
