package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longregen/ctxqa/internal/retry"
)

// fastRetryConfig keeps retry tests from sleeping for real.
func fastRetryConfig() retry.BackoffConfig {
	return retry.BackoffConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		MaxRetries:      3,
		Multiplier:      2.0,
	}
}

func TestChatSendsSystemPromptAndAuth(t *testing.T) {
	var gotReq ChatCompletionRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "lambda"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model", 512, 0.2)

	resp, err := client.Chat(context.Background(), []ChatMessage{
		{Role: "user", Content: "What keyword defines a lambda?"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "lambda", resp.Choices[0].Message.Content)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func TestChatKeepsCallerSystemPrompt(t *testing.T) {
	var gotReq ChatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": "ok"}},
		}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "m", 0, 0)

	_, err := client.Chat(context.Background(), []ChatMessage{
		{Role: "system", Content: "custom"},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "custom", gotReq.Messages[0].Content)
}

func TestChatNonRetryableStatus(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "invalid model", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "m", 0, 0)

	_, err := client.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "400 responses must not be retried")
	assert.Contains(t, err.Error(), "invalid model")
}

func TestChatRetriesRateLimit(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": "ok"}},
		}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "m", 0, 0)
	client.retryConfig = fastRetryConfig()

	resp, err := client.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "ok", resp.Choices[0].Message.Content)
	assert.Equal(t, 3, attempts, "429 responses must be retried until the endpoint recovers")
}

func TestChatSurfacesErrorBodyAfterRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "upstream is down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "m", 0, 0)
	client.retryConfig = fastRetryConfig()

	_, err := client.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Equal(t, 4, attempts, "503 responses are retried until the budget is spent")
	assert.Contains(t, err.Error(), "upstream is down")
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": "SCORE: 0.9"}},
		}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "m", 0, 0)

	text, err := client.Complete(context.Background(), "judge this")
	require.NoError(t, err)
	assert.Equal(t, "SCORE: 0.9", text)
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "m", 0, 0)

	_, err := client.Complete(context.Background(), "judge this")
	assert.Error(t, err)
}

func TestNewClientTrimsBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": "ok"}},
		}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/v1/", "", "m", 0, 0)

	_, err := client.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
}
