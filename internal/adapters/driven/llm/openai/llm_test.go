package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewLLMService(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1", Model: "gpt-test"})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.Error(t, err)

	svc, err := NewLLMService(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())

	// Local OpenAI-compatible servers need no key.
	svc, err = NewLLMService(Config{BaseURL: "http://localhost:11434/v1", Model: "llama3.1"})
	require.NoError(t, err)
	assert.Equal(t, "llama3.1", svc.ModelName())
	assert.NoError(t, svc.Close())
}

func TestLLMService_Chat_JSONMode(t *testing.T) {
	var got map[string]any
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"{\"sections\":[]}"}}]}`))
	})

	out, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "draft"},
	}, driven.ChatOptions{JSON: true, MaxTokens: 512})

	require.NoError(t, err)
	assert.Equal(t, `{"sections":[]}`, out)
	assert.Equal(t, "gpt-test", got["model"])
	assert.Equal(t, float64(512), got["max_tokens"])
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
	assert.Len(t, got["messages"], 2)
}

func TestLLMService_Generate_StopWords(t *testing.T) {
	var got map[string]any
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"done"}}]}`))
	})

	out, err := svc.Generate(context.Background(), "hello", driven.GenerateOptions{StopWords: []string{"END"}})

	require.NoError(t, err)
	assert.Equal(t, "done", out)
	assert.Equal(t, []any{"END"}, got["stop"])
	assert.NotContains(t, got, "response_format")
}

func TestLLMService_Chat_Errors(t *testing.T) {
	t.Run("no choices", func(t *testing.T) {
		svc := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		})
		_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
		assert.ErrorContains(t, err, "no response choices")
	})

	t.Run("api error", func(t *testing.T) {
		svc := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
		})
		_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
		assert.ErrorContains(t, err, "openai: chat completion")
	})
}

func TestLLMService_Ping(t *testing.T) {
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-test","object":"model"}]}`))
	})
	assert.NoError(t, svc.Ping(context.Background()))

	failing := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.Error(t, failing.Ping(context.Background()))
}
