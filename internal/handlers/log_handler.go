// File: internal/handlers/log_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iyunix/go-chat/internal/logger"
	"github.com/iyunix/go-chat/internal/middleware"
)

const maxClientLogBytes = 16 << 10

// ClientLogPayload is a notification or error reported by a client.
type ClientLogPayload struct {
	Level   string `json:"level"`   // info, warn, error
	Message string `json:"message"`
	Context any    `json:"context,omitempty"`
}

type LogHandler struct {
	logger logger.Logger
}

func NewLogHandler(log logger.Logger) *LogHandler {
	return &LogHandler{logger: log}
}

// LogClientEvent records a client-side event at the level the client asked for.
func (h *LogHandler) LogClientEvent(w http.ResponseWriter, r *http.Request) {
	var payload ClientLogPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxClientLogBytes)).Decode(&payload); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fields := []interface{}{
		"source", "client",
		"user_id", middleware.UserIDFrom(r.Context()),
		"context", payload.Context,
	}
	switch strings.ToLower(payload.Level) {
	case "error":
		h.logger.Error(payload.Message, fields...)
	case "warn", "warning":
		h.logger.Warn(payload.Message, fields...)
	case "debug":
		h.logger.Debug(payload.Message, fields...)
	default:
		h.logger.Info(payload.Message, fields...)
	}

	w.WriteHeader(http.StatusNoContent)
}
