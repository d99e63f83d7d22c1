// File: internal/handlers/health_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"
)

type HealthHandler struct {
	db       *gorm.DB
	provider string
}

func NewHealthHandler(db *gorm.DB, provider string) *HealthHandler {
	return &HealthHandler{db: db, provider: provider}
}

// Health reports whether the database answers a ping.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := h.ping(ctx); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]string{
		"status":   status,
		"provider": h.provider,
	})
}

func (h *HealthHandler) ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
