package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Annallisboa/QA-app/internal/prompt"
)

var testMessages = []prompt.Message{
	{Role: prompt.RoleSystem, Content: "You are helpful."},
	{Role: prompt.RoleHuman, Content: "####Como eu ligo o celular?####"},
}

func TestOpenAIClient_Complete(t *testing.T) {
	var got chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "- Pressione o botão lateral"}},
			},
		})
	}))
	defer ts.Close()

	c := &OpenAIClient{APIKey: "test-key", Model: "gpt-4o", Endpoint: ts.URL + "/", HTTPClient: ts.Client()}
	reply, err := c.Complete(context.Background(), testMessages)
	require.NoError(t, err)
	assert.Equal(t, "- Pressione o botão lateral", reply)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, 0.0, got.Temperature)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, testMessages[1].Content, got.Messages[1].Content)
}

func TestOpenAIClient_Non2xx(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Incorrect API key provided"}}`))
	}))
	defer ts.Close()

	c := &OpenAIClient{APIKey: "bad", Model: "gpt-4o", Endpoint: ts.URL, HTTPClient: ts.Client()}
	_, err := c.Complete(context.Background(), testMessages)
	require.Error(t, err)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusUnauthorized, upErr.StatusCode)
	assert.Contains(t, upErr.Error(), "Incorrect API key")
	assert.Equal(t, int32(1), calls.Load(), "no retries")
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	c := &OpenAIClient{Model: "gpt-4o", Endpoint: ts.URL, HTTPClient: ts.Client()}
	_, err := c.Complete(context.Background(), testMessages)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
}

func TestOpenAIClient_NetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := &OpenAIClient{Model: "gpt-4o", Endpoint: url}
	_, err := c.Complete(context.Background(), testMessages)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, 0, upErr.StatusCode)
	assert.Equal(t, "openai", upErr.Provider)
}

func anthropicServer(t *testing.T, status int, body string, calls *atomic.Int32, got *map[string]any) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestAnthropicClient_Complete(t *testing.T) {
	var calls atomic.Int32
	var got map[string]any
	ts := anthropicServer(t, http.StatusOK, `{
		"id": "msg_01",
		"type": "message",
		"role": "assistant",
		"model": "claude-test",
		"content": [{"type": "text", "text": "- Segure o botão de energia"}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 10, "output_tokens": 5}
	}`, &calls, &got)

	c := NewAnthropicClient(AnthropicOptions{APIKey: "k", Model: "claude-test", BaseURL: ts.URL + "/"})
	reply, err := c.Complete(context.Background(), testMessages)
	require.NoError(t, err)
	assert.Equal(t, "- Segure o botão de energia", reply)

	assert.Equal(t, "claude-test", got["model"])
	assert.Equal(t, 0.0, got["temperature"])
	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 1)
}

func TestAnthropicClient_ServerError(t *testing.T) {
	var calls atomic.Int32
	ts := anthropicServer(t, http.StatusInternalServerError,
		`{"type":"error","error":{"type":"api_error","message":"boom"}}`, &calls, nil)

	c := NewAnthropicClient(AnthropicOptions{APIKey: "k", Model: "claude-test", BaseURL: ts.URL + "/"})
	_, err := c.Complete(context.Background(), testMessages)
	require.Error(t, err)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load(), "SDK retries must be disabled")
}

type stubClient struct {
	reply string
	err   error
}

func (s stubClient) Complete(context.Context, []prompt.Message) (string, error) {
	return s.reply, s.err
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := WithLogging(stubClient{reply: "ok"}, logger)
	reply, err := c.Complete(context.Background(), testMessages)
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Contains(t, buf.String(), "model request")
	assert.Contains(t, buf.String(), "model reply")

	boom := errors.New("boom")
	_, err = WithLogging(stubClient{err: boom}, logger).Complete(context.Background(), testMessages)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "model call failed")
}

func TestWithLogging_NilLogger(t *testing.T) {
	inner := stubClient{reply: "x"}
	assert.Equal(t, Client(inner), WithLogging(inner, nil))
}

func TestSplit(t *testing.T) {
	system, turns := split(testMessages)
	assert.Equal(t, "You are helpful.", system)
	require.Len(t, turns, 1)
	assert.Equal(t, prompt.RoleHuman, turns[0].Role)
}
