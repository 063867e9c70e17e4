package ports

import (
	"context"
	"time"

	"github.com/schoolrecords/records-portal/internal/core/domain"
)

// PasswordHasher is a one-way salted hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify never fails for well-formed input; mismatch is false.
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs and verifies claim-carrying tokens.
type TokenIssuer interface {
	Sign(claims domain.Claims, ttl time.Duration) (string, error)
	// Verify returns domain.ErrInvalidToken on bad signature, bad structure or expiry.
	Verify(token string) (domain.Claims, error)
}

// TokenDenylist remembers consumed single-use tokens until they expire.
type TokenDenylist interface {
	// Consume marks id as used and reports whether this was the first use.
	Consume(ctx context.Context, id string, expiresAt time.Time) (bool, error)
	Release(ctx context.Context, id string) error
}

// ResetDelivery hands a freshly issued reset token to the user out-of-band.
type ResetDelivery interface {
	Deliver(ctx context.Context, notice domain.ResetNotice) error
}
