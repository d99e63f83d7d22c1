// File: internal/services/chat/generation.go
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iyunix/go-chat/internal/domain"
	"github.com/iyunix/go-chat/internal/services/ai"
)

// SendTextMessage stores the prompt, asks the provider for an answer and
// stores the answer. A provider failure is replaced by FallbackText.
func (s *ChatService) SendTextMessage(ctx context.Context, userID string, in PromptInput) (*TextResult, error) {
	const op = "sendTextMessage"
	sessionID, prompt, err := s.preparePrompt(ctx, op, userID, in)
	if err != nil {
		return nil, err
	}

	userMsg, err := s.appendMessage(ctx, op, sessionID, userID, domain.RoleUser, domain.TypeText, prompt, time.Time{})
	if err != nil {
		return nil, err
	}

	reply := s.complete(ctx, op, sessionID, func(cctx context.Context) (string, error) {
		return s.provider.GenerateText(cctx, prompt)
	}, FallbackText)

	aiMsg, err := s.appendReply(ctx, op, userMsg, domain.TypeText, reply)
	if err != nil {
		return nil, err
	}

	return &TextResult{Success: true, UserMessage: userMsg, AIMessage: aiMsg}, nil
}

// GenerateImage stores the prompt, asks the provider for an image and stores
// the image reference. A provider failure is replaced by FallbackImageURL.
func (s *ChatService) GenerateImage(ctx context.Context, userID string, in PromptInput) (*ImageResult, error) {
	const op = "generateImage"
	sessionID, prompt, err := s.preparePrompt(ctx, op, userID, in)
	if err != nil {
		return nil, err
	}

	userMsg, err := s.appendMessage(ctx, op, sessionID, userID, domain.RoleUser, domain.TypeImagePrompt, prompt, time.Time{})
	if err != nil {
		return nil, err
	}

	image := s.complete(ctx, op, sessionID, func(cctx context.Context) (string, error) {
		return s.provider.GenerateImage(cctx, prompt)
	}, FallbackImageURL)

	if _, err := s.appendReply(ctx, op, userMsg, domain.TypeImage, image); err != nil {
		return nil, err
	}

	return &ImageResult{Success: true, ImageURL: image}, nil
}

func (s *ChatService) preparePrompt(ctx context.Context, op, userID string, in PromptInput) (uuid.UUID, string, error) {
	if userID == "" {
		return uuid.Nil, "", NewUnauthorizedError(op)
	}
	in.Prompt = strings.TrimSpace(in.Prompt)
	if err := s.check(op, in); err != nil {
		return uuid.Nil, "", err
	}
	sessionID, err := parseSessionID(op, in.SessionID)
	if err != nil {
		return uuid.Nil, "", err
	}
	if _, err := s.requireOwner(ctx, op, sessionID, userID); err != nil {
		return uuid.Nil, "", err
	}
	return sessionID, in.Prompt, nil
}

// complete runs one provider call under the completion timeout. It never
// fails: errors, timeouts and blank answers all yield fallback.
func (s *ChatService) complete(ctx context.Context, op string, sessionID uuid.UUID, call func(context.Context) (string, error), fallback string) string {
	if s.provider == nil {
		s.logger.Warn("no completion provider configured", "operation", op)
		return fallback
	}

	cctx, cancel := context.WithTimeout(ctx, s.config.CompletionTimeout)
	defer cancel()

	start := time.Now()
	out, err := call(cctx)
	if err != nil {
		fields := []interface{}{
			"operation", op,
			"session_id", sessionID,
			"provider", s.provider.Name(),
			"duration", time.Since(start).String(),
			"error", err,
		}
		var aiErr *ai.AIError
		if errors.As(err, &aiErr) {
			fields = append(fields, "error_type", aiErr.Type)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			fields = append(fields, "timed_out", true)
		}
		s.logger.Warn("completion failed, using fallback", fields...)
		return fallback
	}

	out = strings.TrimSpace(out)
	if out == "" {
		s.logger.Warn("completion returned nothing, using fallback", "operation", op, "session_id", sessionID)
		return fallback
	}

	s.logger.Debug("completion succeeded",
		"operation", op,
		"session_id", sessionID,
		"length", len(out),
		"duration", time.Since(start).String())
	return out
}

// appendReply stores the model message even if the caller has gone away, so
// every stored prompt gets a reply. Its timestamp never precedes the prompt's.
func (s *ChatService) appendReply(ctx context.Context, op string, userMsg *domain.ChatMessage, msgType domain.MessageType, content string) (*domain.ChatMessage, error) {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.SaveTimeout)
	defer cancel()

	createdAt := time.Now().UTC()
	if createdAt.Before(userMsg.CreatedAt) {
		createdAt = userMsg.CreatedAt
	}
	return s.appendMessage(saveCtx, op, userMsg.SessionID, userMsg.UserID, domain.RoleModel, msgType, content, createdAt)
}

func (s *ChatService) appendMessage(ctx context.Context, op string, sessionID uuid.UUID, userID string, role domain.MessageRole, msgType domain.MessageType, content string, createdAt time.Time) (*domain.ChatMessage, error) {
	msg, err := s.messages.Create(ctx, &domain.ChatMessage{
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Type:      msgType,
		Content:   content,
		CreatedAt: createdAt,
	})
	if err != nil {
		return nil, NewDependencyError(op, "failed to save message", err)
	}
	return msg, nil
}
