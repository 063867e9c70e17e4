package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/schoolrecords/records-portal/internal/core/domain"
)

// RBAC enforces role-based access control on top of Session.
// Anonymous requests get domain.ErrUnauthorized, other roles domain.ErrForbidden.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := CurrentSession(c)
			if !ok {
				return domain.ErrUnauthorized
			}
			if _, ok := allowed[session.Identity.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
