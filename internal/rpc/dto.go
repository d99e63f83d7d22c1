// File: internal/rpc/dto.go
package rpc

import (
	"github.com/iyunix/go-chat/internal/domain"
	"github.com/iyunix/go-chat/internal/render"
)

// MessageDTO is a stored message plus display-only fields.
type MessageDTO struct {
	domain.ChatMessage
	ContentHTML string `json:"content_html,omitempty"`
}

type textResultDTO struct {
	Success     bool        `json:"success"`
	UserMessage *MessageDTO `json:"userMessage"`
	AIMessage   *MessageDTO `json:"aiMessage"`
}

func toMessageDTO(m *domain.ChatMessage, md *render.Markdown) *MessageDTO {
	if m == nil {
		return nil
	}
	dto := &MessageDTO{ChatMessage: *m}
	if m.Type == domain.TypeText && md != nil {
		dto.ContentHTML = md.ToHTML(m.Content)
	}
	return dto
}

func toMessageDTOs(msgs []domain.ChatMessage, md *render.Markdown) []MessageDTO {
	out := make([]MessageDTO, 0, len(msgs))
	for i := range msgs {
		out = append(out, *toMessageDTO(&msgs[i], md))
	}
	return out
}
