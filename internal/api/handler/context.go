package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/schoolrecords/records-portal/internal/api/middleware"
	"github.com/schoolrecords/records-portal/internal/core/domain"
)

// requireSession returns the session injected by the Session middleware, or
// domain.ErrUnauthorized when the request is anonymous.
func requireSession(c echo.Context) (*domain.Session, error) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

// optionalIdentity is nil for anonymous requests.
func optionalIdentity(c echo.Context) *domain.Identity {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return nil
	}
	identity := session.Identity
	return &identity
}
