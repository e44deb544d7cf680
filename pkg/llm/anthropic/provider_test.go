package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"co-brain-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendsSystemOutOfBand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "a-key", r.Header.Get("x-api-key"))
		assert.Equal(t, APIVersion, r.Header.Get("anthropic-version"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		assert.Equal(t, 1024, req.MaxTokens)
		assert.Equal(t, "persona", req.System)
		assert.Equal(t, 0.3, req.Temperature)
		assert.Equal(t, []llm.Message{{Role: "user", Content: "prompt"}}, req.Messages)

		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"text","text":"B-tree, see arch.md"}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	a := NewAnthropicProvider(server.URL, "", server.Client())
	out, err := a.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "persona"},
		{Role: llm.RoleUser, Content: "prompt"},
	}, llm.WithAPIKey("a-key"))

	require.NoError(t, err)
	assert.Equal(t, "B-tree, see arch.md", out)
}

func TestChatSkipsNonTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"thinking","thinking":"..."},{"type":"text","text":"answer"}]}`))
	}))
	defer server.Close()

	a := NewAnthropicProvider(server.URL, "", server.Client())
	out, err := a.Generate(context.Background(), "q", llm.WithAPIKey("k"))
	require.NoError(t, err)
	assert.Equal(t, "answer", out)
}

func TestChatEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	a := NewAnthropicProvider(server.URL, "", server.Client())
	out, err := a.Generate(context.Background(), "q", llm.WithAPIKey("k"))
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestChatAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	a := NewAnthropicProvider(server.URL, "", server.Client())
	_, err := a.Generate(context.Background(), "q", llm.WithAPIKey("bad"))
	require.Error(t, err)
	assert.Equal(t, "invalid x-api-key", err.Error())
}
