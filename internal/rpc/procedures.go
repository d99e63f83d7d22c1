// File: internal/rpc/procedures.go
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/iyunix/go-chat/internal/services/chat"
)

// Procedure handles one named call. userID is "" for anonymous callers.
type Procedure func(ctx context.Context, userID string, params json.RawMessage) (interface{}, error)

// publicProcedures may be called without a verified identity.
var publicProcedures = map[string]bool{"health": true}

func (s *Server) registerProcedures() {
	s.procedures = map[string]Procedure{
		"health": func(ctx context.Context, userID string, params json.RawMessage) (interface{}, error) {
			return map[string]string{"status": "ok"}, nil
		},

		"chat.listSessions": func(ctx context.Context, userID string, params json.RawMessage) (interface{}, error) {
			return s.service.ListSessions(ctx, userID)
		},

		"chat.createSession": func(ctx context.Context, userID string, params json.RawMessage) (interface{}, error) {
			var in chat.CreateSessionInput
			if err := decodeParams("createSession", params, &in); err != nil {
				return nil, err
			}
			return s.service.CreateSession(ctx, userID, in)
		},

		"chat.renameSession": func(ctx context.Context, userID string, params json.RawMessage) (interface{}, error) {
			var in chat.RenameSessionInput
			if err := decodeParams("renameSession", params, &in); err != nil {
				return nil, err
			}
			return s.service.RenameSession(ctx, userID, in)
		},

		"chat.deleteSession": func(ctx context.Context, userID string, params json.RawMessage) (interface{}, error) {
			var in chat.SessionInput
			if err := decodeParams("deleteSession", params, &in); err != nil {
				return nil, err
			}
			return s.service.DeleteSession(ctx, userID, in)
		},

		"chat.listMessages": func(ctx context.Context, userID string, params json.RawMessage) (interface{}, error) {
			var in chat.SessionInput
			if err := decodeParams("listMessages", params, &in); err != nil {
				return nil, err
			}
			msgs, err := s.service.ListMessages(ctx, userID, in)
			if err != nil {
				return nil, err
			}
			return toMessageDTOs(msgs, s.markdown), nil
		},

		"chat.sendTextMessage": func(ctx context.Context, userID string, params json.RawMessage) (interface{}, error) {
			var in chat.PromptInput
			if err := decodeParams("sendTextMessage", params, &in); err != nil {
				return nil, err
			}
			res, err := s.service.SendTextMessage(ctx, userID, in)
			if err != nil {
				return nil, err
			}
			return &textResultDTO{
				Success:     res.Success,
				UserMessage: toMessageDTO(res.UserMessage, s.markdown),
				AIMessage:   toMessageDTO(res.AIMessage, s.markdown),
			}, nil
		},

		"chat.generateImage": func(ctx context.Context, userID string, params json.RawMessage) (interface{}, error) {
			var in chat.PromptInput
			if err := decodeParams("generateImage", params, &in); err != nil {
				return nil, err
			}
			return s.service.GenerateImage(ctx, userID, in)
		},
	}
}

// decodeParams rejects unknown fields. Absent params decode as the zero value.
func decodeParams(op string, params json.RawMessage, dst interface{}) error {
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return chat.NewValidationError(op, fmt.Sprintf("invalid params: %v", err))
	}
	return nil
}
