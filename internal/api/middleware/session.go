package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/schoolrecords/records-portal/internal/core/domain"
	"github.com/schoolrecords/records-portal/internal/core/ports"
)

// sessionKey is the echo.Context key holding the resolved *domain.Session.
const sessionKey = "session"

// Session resolves the session token carried by the request (cookie first,
// then an Authorization bearer header) and stores it in the context. Requests
// without a valid token pass through as anonymous.
func Session(sessions ports.SessionManager, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := SessionToken(c, cookieName); token != "" {
				if session, ok := sessions.Resolve(token); ok {
					c.Set(sessionKey, session)
				}
			}
			return next(c)
		}
	}
}

// SessionToken extracts the raw token from the cookie or the bearer header.
func SessionToken(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// CurrentSession returns the session stored by Session, if any.
func CurrentSession(c echo.Context) (*domain.Session, bool) {
	session, ok := c.Get(sessionKey).(*domain.Session)
	return session, ok && session != nil
}
