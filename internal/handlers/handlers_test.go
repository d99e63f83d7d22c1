package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-chat/internal/database"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+":"+msg)
}

func (l *recordingLogger) Info(msg string, _ ...interface{})  { l.record("info", msg) }
func (l *recordingLogger) Error(msg string, _ ...interface{}) { l.record("error", msg) }
func (l *recordingLogger) Debug(msg string, _ ...interface{}) { l.record("debug", msg) }
func (l *recordingLogger) Warn(msg string, _ ...interface{})  { l.record("warn", msg) }

func TestLogClientEvent(t *testing.T) {
	log := &recordingLogger{}
	h := NewLogHandler(log)

	req := httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader(`{"level":"error","message":"send failed"}`))
	rec := httptest.NewRecorder()
	h.LogClientEvent(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader(`{"message":"session created"}`))
	rec = httptest.NewRecorder()
	h.LogClientEvent(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, []string{"error:send failed", "info:session created"}, log.entries)
}

func TestLogClientEventRejectsGarbage(t *testing.T) {
	h := NewLogHandler(&recordingLogger{})
	rec := httptest.NewRecorder()
	h.LogClientEvent(rec, httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader("nope")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	NewHealthHandler(db, "gemini").Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","provider":"gemini"}`, rec.Body.String())
}
