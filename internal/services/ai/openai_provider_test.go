package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAIKey = "sk-test"
	cfg.OpenAIBaseURL = srv.URL + "/v1"
	return NewOpenAIProvider(cfg, srv.Client())
}

func TestOpenAIGenerateText(t *testing.T) {
	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":" Hello! "}}]}`))
	})

	text, err := p.GenerateText(context.Background(), "Hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", text)
}

func TestOpenAIGenerateImage(t *testing.T) {
	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/images/generations"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "b64_json", body["response_format"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[{"b64_json":"QUJD"}]}`))
	})

	uri, err := p.GenerateImage(context.Background(), "a cat")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,QUJD", uri)
}

func TestOpenAIEmptyResponses(t *testing.T) {
	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/images/generations") {
			_, _ = w.Write([]byte(`{"created":1,"data":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"1","choices":[]}`))
	})

	_, err := p.GenerateText(context.Background(), "x")
	var aiErr *AIError
	require.True(t, errors.As(err, &aiErr))
	assert.Equal(t, ErrTypeEmptyResponse, aiErr.Type)

	_, err = p.GenerateImage(context.Background(), "x")
	require.True(t, errors.As(err, &aiErr))
	assert.Equal(t, ErrTypeEmptyResponse, aiErr.Type)
}

func TestOpenAIServerError(t *testing.T) {
	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"down"}}`))
	})

	_, err := p.GenerateText(context.Background(), "x")
	var aiErr *AIError
	require.True(t, errors.As(err, &aiErr))
	assert.Equal(t, ErrTypeProvider, aiErr.Type)
}

func TestNewProviderSelects(t *testing.T) {
	cfg := DefaultConfig()
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p.Name())

	cfg.Provider = ProviderOpenAI
	p, err = NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, p.Name())

	cfg.Provider = "claude"
	_, err = NewProvider(cfg)
	assert.Error(t, err)
}
