package middleware

import (
	"errors"
	"strings"

	"listings-console/internal/pkg/jwt"
	"listings-console/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxSessionKey = "session"

// AuthMiddleware admits requests carrying a valid console session cookie. The session is
// stored in Locals and the admin is attached to the request context as a usecase.Viewer,
// which scopes cached listings and carries the backend cookies replayed on their behalf.
type AuthMiddleware struct {
	jwt        jwt.Service
	cookieName string
}

func NewAuthMiddleware(jwtSvc jwt.Service, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, cookieName: cookieName}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := m.authenticate(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// Optional stores the session when a valid one is present and never rejects.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		_ = m.authenticate(c)
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c fiber.Ctx) error {
	token := strings.TrimSpace(c.Cookies(m.cookieName))
	if token == "" {
		token, _ = bearerTokenFromHeader(c.Get("Authorization"))
	}
	if token == "" {
		return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return NewAppError(fiber.StatusUnauthorized, "Session expired", nil, err)
		}
		return NewAppError(fiber.StatusUnauthorized, "Invalid session", nil, err)
	}
	if claims.TokenType != jwt.TokenTypeSession {
		return NewAppError(fiber.StatusUnauthorized, "Invalid session", nil, nil)
	}

	sess := claims.Session()
	c.Locals(CtxSessionKey, sess)
	c.SetContext(usecase.WithViewer(c.Context(), usecase.Viewer{UserID: sess.UserID, Cookies: sess.Backend}))
	return nil
}

// SessionFrom returns the session stored by AuthMiddleware.
func SessionFrom(c fiber.Ctx) (jwt.Session, bool) {
	s, ok := c.Locals(CtxSessionKey).(jwt.Session)
	return s, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
