package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolrecords/records-portal/internal/core/domain"
	"github.com/schoolrecords/records-portal/internal/core/ports"
)

// DefaultSessionMaxAge is used when AuthConfig.SessionMaxAge is unset.
const DefaultSessionMaxAge = 24 * time.Hour

// dummyHash is compared against when no account matches, so unknown ids cost
// roughly the same as wrong passwords.
const dummyHash = "$2a$12$C6UzMDM.H6dfI/f/IKxGhuCo6GMAO6zH0DDkJ2F8rYQ.R1Bl5yq6e"

// AuthConfig configures AuthService.
type AuthConfig struct {
	SessionMaxAge time.Duration
}

// AuthService implements ports.Authenticator and ports.SessionManager.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	cfg    AuthConfig
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, cfg AuthConfig, log zerolog.Logger) *AuthService {
	if cfg.SessionMaxAge <= 0 {
		cfg.SessionMaxAge = DefaultSessionMaxAge
	}
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, cfg: cfg, log: log}
}

// SessionMaxAge is the lifetime given to issued session tokens.
func (s *AuthService) SessionMaxAge() time.Duration {
	return s.cfg.SessionMaxAge
}

// Authenticate returns nil, nil when the id is unknown, the account is
// deactivated or the password does not match. Only malformed input and store
// failures are errors.
func (s *AuthService) Authenticate(ctx context.Context, employeeID, password string) (*domain.Identity, error) {
	if err := domain.CheckCredentials(employeeID, password); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.Verify(password, dummyHash)
			return nil, nil
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !user.Active {
		s.log.Info().Str("employee_id", employeeID).Msg("login attempt on deactivated account")
		return nil, nil
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}

	identity := user.Identity()
	return &identity, nil
}

// Login authenticates and issues a session token.
func (s *AuthService) Login(ctx context.Context, employeeID, password string) (*domain.Session, error) {
	identity, err := s.Authenticate(ctx, employeeID, password)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(domain.Claims{
		domain.ClaimSubject:    identity.ID,
		domain.ClaimEmployeeID: identity.EmployeeID,
		domain.ClaimRole:       string(identity.Role),
		"name":                 identity.Name,
	}, s.cfg.SessionMaxAge)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	session, ok := s.Resolve(token)
	if !ok {
		return nil, fmt.Errorf("login: freshly issued token did not verify")
	}

	s.log.Info().
		Str("employee_id", identity.EmployeeID).
		Str("role", string(identity.Role)).
		Msg("session issued")

	return session, nil
}

// Resolve verifies a session token. Absent or invalid tokens are the ordinary
// unauthenticated case and yield false, not an error.
func (s *AuthService) Resolve(token string) (*domain.Session, bool) {
	if token == "" {
		return nil, false
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, false
	}

	// Reset tokens share the signing key but never authenticate a session.
	if claims.String(domain.ClaimPurpose) != "" {
		return nil, false
	}

	role := domain.Role(claims.String(domain.ClaimRole))
	subject := claims.String(domain.ClaimSubject)
	employeeID := claims.String(domain.ClaimEmployeeID)
	if subject == "" || employeeID == "" || !role.Valid() {
		return nil, false
	}

	return &domain.Session{
		Token: token,
		Identity: domain.Identity{
			ID:         subject,
			EmployeeID: employeeID,
			Name:       claims.String("name"),
			Role:       role,
		},
		IssuedAt:  claims.Time(domain.ClaimIssuedAt),
		ExpiresAt: claims.Time(domain.ClaimExpiresAt),
	}, true
}
