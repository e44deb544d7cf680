package openai

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

func TestChatSendsSystemAndUserTurns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		assert.Equal(t, 0.3, req.Temperature)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, llm.Message{Role: "system", Content: "persona"}, req.Messages[0])
		assert.Equal(t, llm.Message{Role: "user", Content: "prompt"}, req.Messages[1])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Our price is $10"}}]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "", server.Client())
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "persona"},
		{Role: llm.RoleUser, Content: "prompt"},
	}, llm.WithAPIKey("sk-test"), llm.WithTemperature(0.3))

	require.NoError(t, err)
	assert.Equal(t, "Our price is $10", out)
}

func TestChatEmptyChoices(t *testing.T) {
	for _, body := range []string{`{"choices":[]}`, `{"choices":[{"message":{"content":null}}]}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		p := NewOpenAIProvider(server.URL, "", server.Client())
		out, err := p.Generate(context.Background(), "hi", llm.WithAPIKey("k"))
		assert.NoError(t, err)
		assert.Equal(t, "", out)
		server.Close()
	}
}

func TestChatAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided: sk-bad.","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "", server.Client())
	_, err := p.Generate(context.Background(), "hi", llm.WithAPIKey("sk-bad"))
	require.Error(t, err)
	assert.Equal(t, "Incorrect API key provided: sk-bad.", err.Error())
}

func TestChatWithoutKeyNeverCallsServer(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "", server.Client())
	_, err := p.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.False(t, called)
}
