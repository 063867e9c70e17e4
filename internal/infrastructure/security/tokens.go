package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/schoolrecords/records-portal/internal/core/domain"
)

// MinSecretLength is the shortest accepted HS256 signing secret.
const MinSecretLength = 32

var ErrMissingSecret = errors.New("token signing secret is not configured")

// JWTIssuer implements ports.TokenIssuer with HS256.
type JWTIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewJWTIssuer refuses to build an issuer without a secret.
func NewJWTIssuer(secret string) (*JWTIssuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTIssuer{secret: []byte(secret), now: time.Now}, nil
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	clone := *i
	clone.now = now
	return &clone
}

// Sign copies claims, stamps iat and exp, and signs the result.
func (i *JWTIssuer) Sign(claims domain.Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("sign token: ttl must be positive, got %s", ttl)
	}

	issued := i.now()
	mc := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		mc[k] = v
	}
	mc[domain.ClaimIssuedAt] = issued.Unix()
	mc[domain.ClaimExpiresAt] = issued.Add(ttl).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry before returning any claim.
func (i *JWTIssuer) Verify(token string) (domain.Claims, error) {
	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return domain.Claims(mc), nil
}
