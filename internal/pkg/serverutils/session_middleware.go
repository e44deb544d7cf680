package serverutils

import (
	"errors"
	"strings"
	"time"

	"co-brain-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const sessionLocalKey = "session"

type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// SessionLookup resolves a live session by id.
type SessionLookup interface {
	Get(sessionID string) (*store.Session, bool)
}

// SessionTokens signs session handles. Tokens carry no expiry; a token is
// only as alive as the session it names in the repository.
type SessionTokens struct {
	secret []byte
}

func NewSessionTokens(secret string) *SessionTokens {
	return &SessionTokens{secret: []byte(secret)}
}

func (t *SessionTokens) Issue(sessionID string) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Subject:  sessionID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *SessionTokens) Parse(tokenStr string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.SessionID == "" {
		return "", errors.New("token missing session_id")
	}
	return claims.SessionID, nil
}

// TokenFromRequest reads the bearer header and falls back to the token
// query parameter used by browser websocket clients.
func TokenFromRequest(ctx *fiber.Ctx) string {
	authHeader := ctx.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ctx.Query("token")
}

// SessionMiddleware resolves the caller's session and stores it in Locals.
func SessionMiddleware(tokens *SessionTokens, sessions SessionLookup) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := TokenFromRequest(ctx)
		if tokenStr == "" {
			return ErrUnauthorized("missing session token")
		}

		sessionID, err := tokens.Parse(tokenStr)
		if err != nil {
			return ErrUnauthorized(err.Error())
		}

		sess, ok := sessions.Get(sessionID)
		if !ok {
			return ErrUnauthorized("session expired or not found")
		}

		ctx.Locals(sessionLocalKey, sess)
		return ctx.Next()
	}
}

// CurrentSession returns the session stored by SessionMiddleware.
func CurrentSession(ctx *fiber.Ctx) (*store.Session, error) {
	return CurrentSessionFromLocals(func(key string) interface{} { return ctx.Locals(key) })
}

// CurrentSessionFromLocals works on any Locals accessor, such as the one of
// an upgraded websocket connection.
func CurrentSessionFromLocals(locals func(key string) interface{}) (*store.Session, error) {
	sess, ok := locals(sessionLocalKey).(*store.Session)
	if !ok || sess == nil {
		return nil, ErrUnauthorized("no session on request")
	}
	return sess, nil
}
