package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Veraticus/daily-problems/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnthropicClient(t *testing.T) {
	_, err := newAnthropicClient(config.LLMConfig{})
	require.Error(t, err)

	client, err := newAnthropicClient(config.LLMConfig{APIKey: "k"})
	require.NoError(t, err)
	ac, ok := client.(*anthropicClient)
	require.True(t, ok)
	assert.Equal(t, defaultAnthropicModel, ac.model)
	assert.Equal(t, 4096, ac.maxTokens)
}

func TestAnthropicClient_GenerateWithTool(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"stop_reason": "tool_use",
			"content": [
				{"type": "text", "text": "Classifying now."},
				{"type": "tool_use", "name": "classified_problem", "input": {"title": "Two Sum", "difficulty": "Easy"}}
			]
		}`))
	}))
	defer server.Close()

	client, err := newAnthropicClient(config.LLMConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	got, err := client.Generate(context.Background(), Request{
		System:     "system",
		Prompt:     "problem text",
		Schema:     problemSchema(),
		SchemaName: "classified_problem",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Two Sum","difficulty":"Easy"}`, got)

	assert.Equal(t, "system", captured["system"])
	assert.Equal(t, map[string]any{"type": "tool", "name": "classified_problem"}, captured["tool_choice"])
	tools, ok := captured["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	tool, ok := tools[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, tool, "input_schema")
}

func TestAnthropicClient_GenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "api error",
			status:  http.StatusInternalServerError,
			body:    `{"type":"error"}`,
			wantErr: "status 500",
		},
		{
			name:    "truncated",
			status:  http.StatusOK,
			body:    `{"stop_reason":"max_tokens","content":[],"usage":{"output_tokens":4096}}`,
			wantErr: "truncated",
		},
		{
			name:    "no tool call",
			status:  http.StatusOK,
			body:    `{"stop_reason":"end_turn","content":[{"type":"text","text":"I can't."}]}`,
			wantErr: "no usable content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := newAnthropicClient(config.LLMConfig{APIKey: "k", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = client.Generate(context.Background(), Request{Prompt: "p", Schema: problemSchema(), SchemaName: "classified_problem"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
