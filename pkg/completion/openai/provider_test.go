package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"humanlenk-be/pkg/completion"
)

func TestOpenAIProvider_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Here is a summary."}}]}`))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider("sk-test", srv.URL, "")
	reply, err := provider.Chat(context.Background(), []completion.Message{
		{Role: "system", Content: "You are a helpful assistant."},
		{Role: "user", Content: "Summarize this."},
	})
	require.NoError(t, err)
	assert.Equal(t, "Here is a summary.", reply)
}

func TestOpenAIProvider_Chat_WireFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []map[string]string `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)

		// the API only accepts lowercase keys
		for _, msg := range req.Messages {
			assert.Contains(t, msg, "role")
			assert.Contains(t, msg, "content")
			assert.NotContains(t, msg, "Role")
			assert.NotContains(t, msg, "Content")
		}
		assert.Equal(t, "system", req.Messages[0]["role"])
		assert.Equal(t, "user", req.Messages[1]["role"])
		assert.Equal(t, "hi", req.Messages[1]["content"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider("sk-test", srv.URL, "")
	reply, err := provider.Chat(context.Background(), []completion.Message{
		{Role: "system", Content: "You are a helpful assistant."},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)
}

func TestOpenAIProvider_Chat_ApiError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider("sk-test", srv.URL, "")
	_, err := provider.Chat(context.Background(), []completion.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestOpenAIProvider_Chat_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider("", srv.URL, "")
	_, err := provider.Chat(context.Background(), []completion.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}

func TestOpenAIProvider_Generate_WrapsPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []completion.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider("", srv.URL, "")
	reply, err := provider.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}
