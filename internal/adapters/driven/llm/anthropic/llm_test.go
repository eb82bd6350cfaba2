package anthropic

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

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewLLMService(Config{APIKey: "test-key", BaseURL: srv.URL + "/", Model: "claude-test"})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.Error(t, err)

	svc, err := NewLLMService(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
	assert.NoError(t, svc.Close())
}

func TestLLMService_Chat_SystemAndPrefill(t *testing.T) {
	var got messagesRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"\"sections\":[]}"}],"stop_reason":"end_turn"}`))
	})

	out, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "one"},
		{Role: "system", Content: "two"},
		{Role: "user", Content: "draft"},
	}, driven.ChatOptions{JSON: true})

	require.NoError(t, err)
	assert.Equal(t, `{"sections":[]}`, out)
	assert.Equal(t, "one\n\ntwo", got.System)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, message{Role: "assistant", Content: "{"}, got.Messages[1])
}

func TestLLMService_Generate(t *testing.T) {
	var got messagesRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hi "},{"type":"text","text":"there"}]}`))
	})

	out, err := svc.Generate(context.Background(), "hello", driven.GenerateOptions{MaxTokens: 10, StopWords: []string{"END"}})

	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
	assert.Equal(t, 10, got.MaxTokens)
	assert.Equal(t, []string{"END"}, got.StopSeqs)
	assert.Equal(t, []message{{Role: "user", Content: "hello"}}, got.Messages)
}

func TestLLMService_Errors(t *testing.T) {
	t.Run("api error body", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"max_tokens too large"}}`))
		})
		_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
		assert.ErrorContains(t, err, "max_tokens too large")
		assert.ErrorContains(t, err, "status 400")
	})

	t.Run("plain error body", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		})
		_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
		assert.ErrorContains(t, err, "upstream down")
	})

	t.Run("no text", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"content":[]}`))
		})
		_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{JSON: true})
		assert.ErrorContains(t, err, "no text content")
	})
}

func TestLLMService_Ping(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/models", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	assert.NoError(t, svc.Ping(context.Background()))

	failing := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	assert.ErrorContains(t, failing.Ping(context.Background()), "ping")
}
