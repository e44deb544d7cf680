package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSONDecodesSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "v", r.Header.Get("X-Test"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"q":"hi"}`, string(body))
		w.Write([]byte(`{"a":"ok"}`))
	}))
	defer server.Close()

	var out struct {
		A string `json:"a"`
	}
	err := PostJSON(context.Background(), server.Client(), "test", server.URL,
		map[string]string{"X-Test": "v"}, map[string]string{"q": "hi"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.A)
}

func TestPostJSONExtractsErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"nested", `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`, "Incorrect API key provided"},
		{"flat", `{"error":"quota exceeded"}`, "quota exceeded"},
		{"message", `{"message":"bad gateway"}`, "bad gateway"},
		{"plain", `upstream timed out`, "upstream timed out"},
		{"empty", ``, "test api error (status 401)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			var out map[string]any
			err := PostJSON(context.Background(), server.Client(), "test", server.URL, nil, struct{}{}, &out)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestPostJSONMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	var out map[string]any
	err := PostJSON(context.Background(), server.Client(), "test", server.URL, nil, struct{}{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode test response")
}

func TestPostJSONTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var out map[string]any
	err := PostJSON(context.Background(), http.DefaultClient, "test", url, nil, struct{}{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test request failed")
}
