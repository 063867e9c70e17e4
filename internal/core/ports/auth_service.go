package ports

import (
	"context"

	"github.com/schoolrecords/records-portal/internal/core/domain"
)

// Authenticator turns raw credentials into an identity. A nil identity with a
// nil error means the credentials did not match an active account.
type Authenticator interface {
	Authenticate(ctx context.Context, employeeID, password string) (*domain.Identity, error)
}

// SessionManager issues and resolves stateless session tokens.
type SessionManager interface {
	Login(ctx context.Context, employeeID, password string) (*domain.Session, error)
	// Resolve returns false for absent, malformed or expired tokens.
	Resolve(token string) (*domain.Session, bool)
}
