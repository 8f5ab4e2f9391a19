package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratiq-api/pkg/llm"
)

func testConfig(baseURL string) *llm.Config {
	return &llm.Config{
		Timeout:  5 * time.Second,
		LogLevel: "error",
		Anthropic: llm.AnthropicConfig{
			BaseURL: baseURL,
			APIKey:  "test-key",
			Model:   "claude-3-5-haiku-latest",
		},
	}
}

func messageServer(t *testing.T, status int, payload map[string]any, captured *map[string]any, calls *int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/messages")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, captured)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(payload) //nolint:errcheck
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestProviderComplete(t *testing.T) {
	var captured map[string]any
	calls := 0
	ts := messageServer(t, http.StatusOK, map[string]any{
		"id":   "msg_001",
		"type": "message",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "text", "text": `{"market_penetration":`},
			{"type": "text", "text": `["Bundle"]}`},
		},
		"model":       "claude-3-5-haiku-latest",
		"stop_reason": "end_turn",
		"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
	}, &captured, &calls)

	p, err := NewProvider(testConfig(ts.URL), WithHTTPClient(ts.Client()), WithLogger(llm.NopLogger()))
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-haiku-latest", p.Model())

	text, err := p.Complete(context.Background(), llm.CompletionRequest{
		System:      "Return only strict JSON.",
		User:        "Ansoff please",
		Temperature: 0.2,
		MaxTokens:   800,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"market_penetration":["Bundle"]}`, text)
	assert.Equal(t, 1, calls)

	assert.Equal(t, "claude-3-5-haiku-latest", captured["model"])
	assert.EqualValues(t, 800, captured["max_tokens"])
	assert.InDelta(t, 0.2, captured["temperature"], 1e-9)
	system, ok := captured["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	assert.Equal(t, "Return only strict JSON.", system[0].(map[string]any)["text"])
	msgs, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
}

func TestProviderCompleteDefaultsMaxTokens(t *testing.T) {
	var captured map[string]any
	calls := 0
	ts := messageServer(t, http.StatusOK, map[string]any{
		"id":          "msg_002",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": "{}"}},
		"model":       "claude-3-5-haiku-latest",
		"stop_reason": "end_turn",
		"usage":       map[string]any{"input_tokens": 1, "output_tokens": 1},
	}, &captured, &calls)

	p, err := NewProvider(testConfig(ts.URL), WithHTTPClient(ts.Client()), WithLogger(llm.NopLogger()))
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), llm.CompletionRequest{User: "hi"})
	require.NoError(t, err)
	assert.EqualValues(t, defaultMaxTokens, captured["max_tokens"])
	assert.NotContains(t, captured, "system")
}

func TestProviderCompleteEmptyContent(t *testing.T) {
	var captured map[string]any
	calls := 0
	ts := messageServer(t, http.StatusOK, map[string]any{
		"id":          "msg_003",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{},
		"model":       "claude-3-5-haiku-latest",
		"stop_reason": "end_turn",
		"usage":       map[string]any{"input_tokens": 1, "output_tokens": 0},
	}, &captured, &calls)

	p, err := NewProvider(testConfig(ts.URL), WithHTTPClient(ts.Client()), WithLogger(llm.NopLogger()))
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), llm.CompletionRequest{User: "hi"})
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestProviderCompleteServerErrorIsSingleAttempt(t *testing.T) {
	var captured map[string]any
	calls := 0
	ts := messageServer(t, http.StatusInternalServerError, map[string]any{
		"type":  "error",
		"error": map[string]any{"type": "api_error", "message": "boom"},
	}, &captured, &calls)

	p, err := NewProvider(testConfig(ts.URL), WithHTTPClient(ts.Client()), WithLogger(llm.NopLogger()))
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), llm.CompletionRequest{User: "hi"})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewProviderRequiresKey(t *testing.T) {
	_, err := NewProvider(nil)
	require.Error(t, err)

	cfg := testConfig("http://localhost")
	cfg.Anthropic.APIKey = " "
	_, err = NewProvider(cfg)
	require.Error(t, err)
}
