package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"co-brain-be/internal/bootstrap"
	"co-brain-be/internal/config"
	"co-brain-be/internal/pkg/logger"
	"co-brain-be/pkg/chatbot"
	"co-brain-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	mu    sync.Mutex
	modes []store.Mode
	docs  [][]store.Document
}

func (d *recordingDispatcher) Ask(ctx context.Context, question string, mode store.Mode, documents []store.Document, credential string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.modes = append(d.modes, mode)
	d.docs = append(d.docs, documents)
	if credential == "" {
		return "Error: missing"
	}
	return "answer to: " + question
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type harness struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (h *harness) do(method, target string, body io.Reader, contentType string) (*http.Response, envelope) {
	h.t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	resp, err := h.app.Test(req, 5000)
	require.NoError(h.t, err)

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp, env
}

func (h *harness) json(method, target string, payload any) (*http.Response, envelope) {
	b, err := json.Marshal(payload)
	require.NoError(h.t, err)
	return h.do(method, target, bytes.NewReader(b), fiber.MIMEApplicationJSON)
}

func (h *harness) upload(category string, files map[string]string) (*http.Response, envelope) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(h.t, w.WriteField("category", category))
	for name, content := range files {
		fw, err := w.CreateFormFile("files", name)
		require.NoError(h.t, err)
		_, _ = fw.Write([]byte(content))
	}
	require.NoError(h.t, w.Close())
	return h.do(http.MethodPost, "/api/document/v1", &buf, w.FormDataContentType())
}

func newHarness(t *testing.T, d chatbot.Dispatcher) *harness {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	cfg := config.Load()
	cfg.App.LogFilePath = filepath.Join(t.TempDir(), "app.log")
	cfg.App.NatsURL = ""
	cfg.Ai.DefaultProvider = "gemini"

	registry := chatbot.NewRegistry(map[store.Provider]chatbot.Dispatcher{
		store.ProviderGemini:    d,
		store.ProviderOpenAI:    d,
		store.ProviderAnthropic: d,
	})
	container, err := bootstrap.NewContainer(cfg,
		bootstrap.WithRegistry(registry),
		bootstrap.WithLogger(logger.NewNopLogger()),
		bootstrap.WithCounter(wordCounter{}),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		container.Close()
	})
	require.NoError(t, container.Start(ctx))

	return &harness{t: t, app: New(cfg, container).GetApp()}
}

type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }

func TestHealthy(t *testing.T) {
	h := newHarness(t, &recordingDispatcher{})
	resp, env := h.do(http.MethodGet, "/check/healthy", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	h := newHarness(t, &recordingDispatcher{})
	for _, target := range []string{"/api/session/v1", "/api/settings/v1", "/api/document/v1", "/api/chat/v1/history"} {
		resp, env := h.do(http.MethodGet, target, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, target)
		assert.False(t, env.Success)
	}
}

func TestConversationFlow(t *testing.T) {
	d := &recordingDispatcher{}
	h := newHarness(t, d)

	// Session
	resp, env := h.do(http.MethodPost, "/api/session/v1", nil, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Token    string `json:"token"`
		Greeting string `json:"greeting"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.Token)
	assert.Contains(t, created.Greeting, "Co-Brain")
	h.token = created.Token

	// Documents
	resp, _ = h.upload("sales_safe", map[string]string{"pricing.txt": "Basic plan is $10/mo"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = h.upload("internal_tech", map[string]string{"arch.md": "Uses a B-tree index"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = h.upload("top_secret", map[string]string{"x.txt": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	_, env = h.do(http.MethodGet, "/api/document/v1", nil, "")
	var list struct {
		Documents []struct {
			Name     string `json:"name"`
			Category string `json:"category"`
			Tokens   int    `json:"tokens"`
		} `json:"documents"`
		TotalTokens int `json:"total_tokens"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Documents, 2)
	assert.Equal(t, "pricing.txt", list.Documents[0].Name)
	assert.Equal(t, "restricted", list.Documents[1].Category)
	assert.Equal(t, 8, list.TotalTokens)

	// Public mode question
	resp, env = h.json(http.MethodPost, "/api/chat/v1/send", map[string]string{"question": "What does the Basic plan cost?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sent struct {
		Reply struct {
			Text     string `json:"text"`
			Mode     string `json:"mode"`
			Provider string `json:"provider"`
		} `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sent))
	assert.Equal(t, "answer to: What does the Basic plan cost?", sent.Reply.Text)
	assert.Equal(t, "public", sent.Reply.Mode)
	assert.Equal(t, "gemini", sent.Reply.Provider)

	// Switch to R&D and Anthropic without a key
	resp, _ = h.json(http.MethodPut, "/api/settings/v1/mode", map[string]string{"mode": "r&d"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = h.json(http.MethodPut, "/api/settings/v1/provider", map[string]string{"provider": "anthropic"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = h.json(http.MethodPost, "/api/chat/v1/send", map[string]string{"question": "How does indexing work?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &sent))
	assert.Equal(t, "Error: missing", sent.Reply.Text)
	assert.Equal(t, "anthropic", sent.Reply.Provider)

	// Credentials are masked on the way out
	resp, env = h.json(http.MethodPut, "/api/settings/v1/credentials", map[string]string{"anthropic": "sk-ant-123456789"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(env.Data), "sk-ant-123456789")

	d.mu.Lock()
	require.Len(t, d.modes, 2)
	assert.Equal(t, store.ModePublic, d.modes[0])
	assert.Equal(t, store.ModeFull, d.modes[1])
	assert.Len(t, d.docs[1], 2)
	d.mu.Unlock()

	// Preview never dispatches
	resp, env = h.json(http.MethodPost, "/api/chat/v1/preview", map[string]string{"question": "q"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), "arch.md")

	// History
	_, env = h.do(http.MethodGet, "/api/chat/v1/history", nil, "")
	var hist struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &hist))
	require.Len(t, hist.Messages, 4)
	assert.Equal(t, "user", hist.Messages[0].Role)
	assert.Equal(t, "assistant", hist.Messages[3].Role)

	// Blank question
	resp, _ = h.json(http.MethodPost, "/api/chat/v1/send", map[string]string{"question": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Websocket route refuses plain HTTP
	resp, _ = h.do(http.MethodGet, "/api/chat/v1/ws", nil, "")
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)

	// End session
	resp, _ = h.do(http.MethodDelete, "/api/session/v1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = h.do(http.MethodGet, "/api/session/v1", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnknownDocumentIs404(t *testing.T) {
	h := newHarness(t, &recordingDispatcher{})
	_, env := h.do(http.MethodPost, "/api/session/v1", nil, "")
	var created struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	h.token = created.Token

	resp, _ := h.do(http.MethodGet, "/api/document/v1/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = h.do(http.MethodDelete, "/api/document/v1/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
