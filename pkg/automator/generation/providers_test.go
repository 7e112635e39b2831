package generation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractBody = `{"code":"Sub X()\nEnd Sub","explanation":"Run it."}`

// recordingServer answers every request with status and body, recording the decoded request JSON.
func recordingServer(t *testing.T, status int, body any) (*httptest.Server, *map[string]any) {
	t.Helper()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestOpenAICompleter(t *testing.T) {
	srv, got := recordingServer(t, http.StatusOK, map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []any{map[string]any{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": contractBody},
		}},
	})

	c := NewOpenAICompleter("sk-test", "gpt-4o-mini", srv.URL)
	text, err := c.Complete(context.Background(), CompletionRequest{
		Prompt:         "write a macro",
		System:         prompt.ResponseDirective,
		ResponseFormat: prompt.ResponseFormatJSON,
		MaxTokens:      100,
	})

	require.NoError(t, err)
	assert.Equal(t, contractBody, text)
	assert.Equal(t, "gpt-4o-mini", (*got)["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, (*got)["response_format"])
	messages, ok := (*got)["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestOpenAICompleterError(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusUnauthorized, map[string]any{
		"error": map[string]any{"message": "bad key", "type": "invalid_request_error"},
	})

	c := NewOpenAICompleter("sk-bad", "gpt-4o-mini", srv.URL)
	_, err := NewClient(c).Generate(context.Background(), prompt.Request{Instruction: "x"})

	assert.ErrorIs(t, err, ErrServiceFailure)
}

func TestAnthropicCompleter(t *testing.T) {
	srv, got := recordingServer(t, http.StatusOK, map[string]any{
		"id":            "msg_1",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-sonnet-4-5",
		"stop_reason":   "end_turn",
		"stop_sequence": nil,
		"content":       []any{map[string]any{"type": "text", "text": contractBody}},
		"usage":         map[string]any{"input_tokens": 10, "output_tokens": 20},
	})

	c := NewAnthropicCompleter("sk-ant-test", "claude-sonnet-4-5", srv.URL)
	result, err := NewClient(c).Generate(context.Background(), prompt.Request{
		Instruction: "write a macro",
		System:      prompt.ResponseDirective,
	})

	require.NoError(t, err)
	assert.Equal(t, "Run it.", result.Explanation)
	assert.Equal(t, "claude-sonnet-4-5", (*got)["model"])
	assert.EqualValues(t, DefaultMaxTokens, (*got)["max_tokens"])
}

func TestGeminiCompleter(t *testing.T) {
	var path string
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": contractBody}},
				},
				"finishReason": "STOP",
			}},
		})
	}))
	t.Cleanup(srv.Close)

	c, err := NewGeminiCompleter(context.Background(), "g-test", "gemini-2.5-flash", srv.URL)
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), CompletionRequest{
		Prompt:         "write a macro",
		System:         prompt.ResponseDirective,
		ResponseFormat: prompt.ResponseFormatJSON,
	})

	require.NoError(t, err)
	assert.Equal(t, contractBody, text)
	assert.True(t, strings.HasSuffix(path, "models/gemini-2.5-flash:generateContent"), path)

	genCfg, ok := got["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "application/json", genCfg["responseMimeType"])

	system, ok := got["systemInstruction"].(map[string]any)
	require.True(t, ok)
	parts, ok := system["parts"].([]any)
	require.True(t, ok)
	require.Len(t, parts, 1)
	assert.Equal(t, prompt.ResponseDirective, parts[0].(map[string]any)["text"])

	contents, ok := got["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)
}

func TestGeminiCompleterThroughClient(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusOK, map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": "not json"}},
			},
		}},
	})

	c, err := NewCompleter(context.Background(), Options{
		Provider: ProviderGemini,
		APIKey:   "g-test",
		BaseURL:  srv.URL,
	})
	require.NoError(t, err)

	_, err = NewClient(c).Generate(context.Background(), prompt.Request{Instruction: "x"})
	assert.ErrorIs(t, err, ErrContractViolation)
}
