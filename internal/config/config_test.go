package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test; t.Setenv restores them afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "SERVER_PORT", "DATABASE_PATH", "AUTH_COOKIE_NAME", "AI_PROVIDER",
		"GOOGLE_API_KEY_TEXT", "GOOGLE_API_KEY_IMAGE", "COMPLETION_TIMEOUT", "CORS_ORIGINS")
	t.Setenv("ENV", "development")
	t.Setenv("GOOGLE_API_KEY", "base-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "chat.db", cfg.DatabasePath)
	assert.Equal(t, "appSession", cfg.AuthCookieName)
	assert.Equal(t, "base-key", cfg.GeminiTextKey)
	assert.Equal(t, "base-key", cfg.GeminiImageKey)
	assert.Equal(t, 60*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestAIProviderEmptyValueIsRejected(t *testing.T) {
	// An explicitly empty AI_PROVIDER does not fall back to the default.
	t.Setenv("ENV", "development")
	t.Setenv("AI_PROVIDER", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("COMPLETION_TIMEOUT", "15")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("GOOGLE_API_KEY_TEXT", "text-key")
	unsetEnv(t, "GOOGLE_API_KEY_IMAGE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, 15*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "text-key", cfg.GeminiTextKey)
}

func TestValidateProductionListsMissing(t *testing.T) {
	cfg := &Config{Environment: "production", AIProvider: "gemini", CompletionTimeout: time.Second}
	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{"AUTH_SECRET", "DATABASE_URL", "GOOGLE_API_KEY_TEXT", "GOOGLE_API_KEY_IMAGE"} {
		assert.Contains(t, err.Error(), key)
	}

	cfg = &Config{
		Environment:       "production",
		AIProvider:        "openai",
		CompletionTimeout: time.Second,
		AuthSecret:        "s",
		DatabaseURL:       "postgres://x",
		OpenAIKey:         "k",
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := &Config{AIProvider: "llama", CompletionTimeout: time.Second}
	assert.Error(t, cfg.Validate())
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("X_TIMEOUT", "2m")
	assert.Equal(t, 2*time.Minute, getEnvAsDuration("X_TIMEOUT", time.Second))
	t.Setenv("X_TIMEOUT", "nonsense")
	assert.Equal(t, time.Second, getEnvAsDuration("X_TIMEOUT", time.Second))
}
