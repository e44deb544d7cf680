package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"co-brain-be/internal/repository/memory"
	"co-brain-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLookup map[string]*store.Session

func (m mapLookup) Get(id string) (*store.Session, bool) {
	s, ok := m[id]
	return s, ok
}

func decode(t *testing.T, body io.Reader) Response[map[string]any] {
	t.Helper()
	var res Response[map[string]any]
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/app", func(c *fiber.Ctx) error { return ErrConflict("a question is already in progress") })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrMethodNotAllowed })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("db password is hunter2") })

	resp, err := app.Test(httptest.NewRequest("GET", "/app", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	res := decode(t, resp.Body)
	assert.False(t, res.Success)
	assert.Equal(t, "a question is already in progress", res.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, decode(t, resp.Body).Message, "hunter2")
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Question string `json:"question" validate:"required"`
		Mode     string `json:"mode" validate:"omitempty,oneof=public full"`
	}

	assert.NoError(t, ValidateRequest(req{Question: "hi"}))

	err := ValidateRequest(req{Mode: "admin"})
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusUnprocessableEntity, appErr.Code)
	assert.Equal(t, "failed on 'required' tag", appErr.Fields["question"])
	assert.Equal(t, "failed on 'oneof' tag", appErr.Fields["mode"])
}

func TestSessionTokensRoundTrip(t *testing.T) {
	tokens := NewSessionTokens("secret")
	tok, err := tokens.Issue("sess-1")
	require.NoError(t, err)

	id, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id)

	_, err = NewSessionTokens("other").Parse(tok)
	assert.Error(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		SessionID:        "sess-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tokens.Parse(foreign)
	assert.Error(t, err)
}

func TestSessionMiddleware(t *testing.T) {
	tokens := NewSessionTokens("secret")
	sess := store.NewSession("sess-1", store.ProviderGemini, nil)
	lookup := mapLookup{"sess-1": sess}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/me", SessionMiddleware(tokens, lookup), func(c *fiber.Ctx) error {
		s, err := CurrentSession(c)
		if err != nil {
			return err
		}
		return c.JSON(SuccessResponse("ok", map[string]any{"id": s.ID}))
	})

	good, _ := tokens.Issue("sess-1")
	gone, _ := tokens.Issue("sess-404")

	cases := []struct {
		name   string
		target string
		header string
		status int
	}{
		{"bearer", "/me", "Bearer " + good, fiber.StatusOK},
		{"query", "/me?token=" + good, "", fiber.StatusOK},
		{"missing", "/me", "", fiber.StatusUnauthorized},
		{"garbage", "/me", "Bearer nope", fiber.StatusUnauthorized},
		{"unknown session", "/me", "Bearer " + gone, fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.status == fiber.StatusOK {
				assert.Equal(t, "sess-1", decode(t, resp.Body).Data["id"])
			}
		})
	}
}

func TestSessionMiddlewareFollowsSlidingSessionTTL(t *testing.T) {
	const ttl = 400 * time.Millisecond
	tokens := NewSessionTokens("secret")
	repo := memory.NewSessionRepository(ttl)
	repo.Save(store.NewSession("sess-1", store.ProviderGemini, nil))

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/me", SessionMiddleware(tokens, repo), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	tok, err := tokens.Issue("sess-1")
	require.NoError(t, err)
	call := func() int {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	// Active use keeps the session, and its token, alive well past the first TTL.
	for i := 0; i < 6; i++ {
		time.Sleep(ttl / 3)
		require.Equal(t, fiber.StatusNoContent, call(), "request %d", i)
	}

	time.Sleep(ttl + ttl/2)
	assert.Equal(t, fiber.StatusUnauthorized, call())
}
