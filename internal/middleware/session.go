package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lunashop/internal/services"
	"lunashop/internal/session"
)

// SessionCookie is the name of the cookie carrying the session id.
const SessionCookie = "luna_session"

const sessionKey = "session"

// SessionLoader loads the request's session from the store, creating a fresh
// one (and setting the cookie) when none exists, and puts it in Locals for
// handlers. Sessions are only persisted when a handler mutates them.
func SessionLoader(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(SessionCookie)
		if id == "" {
			id = uuid.New().String()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}

		sess, err := store.Get(c.Context(), id)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logrus.Errorf("Failed to load session %s: %v", id, err)
			}
			sess = &session.Session{ID: id}
		}

		c.Locals(sessionKey, sess)
		return c.Next()
	}
}

// SessionFromCtx returns the request's session placed by SessionLoader.
func SessionFromCtx(c *fiber.Ctx) *session.Session {
	if sess, ok := c.Locals(sessionKey).(*session.Session); ok {
		return sess
	}
	return session.New()
}

// AuthRequired guards routes that need a logged-in user. The cookie session
// is checked first; API clients may instead present the JWT issued at login
// as a Bearer token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFromCtx(c)
		if sess.Authenticated() {
			c.Locals("user_id", sess.UserID)
			c.Locals("username", sess.Username)
			return c.Next()
		}

		// Expected format: "Bearer <token>"
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				claims, err := authService.ValidateToken(parts[1])
				if err == nil {
					c.Locals("user_id", claims["user_id"])
					c.Locals("username", claims["username"])
					return c.Next()
				}
				logrus.Warnf("JWT validation failed: %v", err)
			}
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Login required",
		})
	}
}
