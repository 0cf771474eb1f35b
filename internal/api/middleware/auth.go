/**
 * @description
 * Session middleware.
 * Resolves the identity-provider session cookie (or bearer token) into a
 * user and stashes it in the request context. Pages gate rendering on it;
 * protected routes redirect to /login or answer 401.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2: HTTP Context
 * - webapp/internal/identity: token verification
 * - github.com/google/uuid: anonymous session ids for request sequencing
 */

package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/weather-project/webapp/internal/identity"
)

const (
	localsUserKey     = "session_user"
	SessionIDCookie   = "wx_session"
	SidebarPrefCookie = "sidebarCollapsed"
)

// SessionConfig holds the verifier and cookie naming
type SessionConfig struct {
	Verifier   *identity.Verifier
	CookieName string
}

var mwConfig *SessionConfig

// InitSession wires the verifier. Should be called at startup.
func InitSession(verifier *identity.Verifier, cookieName string) {
	mwConfig = &SessionConfig{Verifier: verifier, CookieName: cookieName}
}

// WithUser resolves the session on every request without enforcing it.
// Unauthenticated requests proceed with no user set. Also assigns an
// anonymous session id cookie used to sequence listing requests.
func WithUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Cookies(SessionIDCookie) == "" {
			c.Cookie(&fiber.Cookie{
				Name:     SessionIDCookie,
				Value:    uuid.NewString(),
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Expires:  time.Now().Add(30 * 24 * time.Hour),
			})
		}

		if mwConfig == nil || mwConfig.Verifier == nil {
			return c.Next()
		}

		token := c.Cookies(mwConfig.CookieName)
		if token == "" {
			authHeader := c.Get("Authorization")
			if trimmed := strings.TrimPrefix(authHeader, "Bearer "); trimmed != authHeader {
				token = trimmed
			}
		}
		if token == "" {
			return c.Next()
		}

		user, err := mwConfig.Verifier.Verify(token)
		if err == nil && user != nil {
			c.Locals(localsUserKey, user)
		}
		return c.Next()
	}
}

// RequireUser protects page routes: unauthenticated visitors go to /login.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireUserJSON protects API routes: unauthenticated callers get 401.
func RequireUserJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Login required",
			})
		}
		return c.Next()
	}
}

// SetUser injects a user into the request context. Handler tests use this
// in place of a real verified session.
func SetUser(c *fiber.Ctx, user *identity.User) {
	c.Locals(localsUserKey, user)
}

// CurrentUser returns the authenticated user for this request, or nil.
func CurrentUser(c *fiber.Ctx) *identity.User {
	if user, ok := c.Locals(localsUserKey).(*identity.User); ok {
		return user
	}
	return nil
}

// SessionID returns the anonymous session id for this request.
func SessionID(c *fiber.Ctx) string {
	if id := c.Cookies(SessionIDCookie); id != "" {
		return id
	}
	// First request of a fresh session: the cookie is still in-flight
	return c.IP()
}

// SidebarCollapsed reads the persisted sidebar preference.
func SidebarCollapsed(c *fiber.Ctx) bool {
	return c.Cookies(SidebarPrefCookie) == "true"
}
