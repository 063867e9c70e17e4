package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolrecords/records-portal/internal/core/domain"
	"github.com/schoolrecords/records-portal/internal/infrastructure/security"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAuthService(t *testing.T, repo *stubUserRepo) *AuthService {
	t.Helper()
	issuer, err := security.NewJWTIssuer(testSecret)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	return NewAuthService(repo, plainHasher{}, issuer, AuthConfig{SessionMaxAge: time.Hour}, zerolog.Nop())
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := newStubUserRepo(activeUser("403950-0000", domain.RoleTeacher, "goodpass"))
	svc := newTestAuthService(t, repo)

	identity, err := svc.Authenticate(context.Background(), "403950-0000", "goodpass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if identity == nil {
		t.Fatalf("expected identity")
	}
	if identity.EmployeeID != "403950-0000" || identity.Role != domain.RoleTeacher || identity.Name != "Ada Reyes" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	repo := newStubUserRepo(activeUser("403950-0000", domain.RoleTeacher, "goodpass"))
	svc := newTestAuthService(t, repo)

	identity, err := svc.Authenticate(context.Background(), "403950-0000", "badpass")
	if err != nil || identity != nil {
		t.Fatalf("expected none, got %+v, %v", identity, err)
	}
}

func TestAuthService_Authenticate_Deactivated(t *testing.T) {
	u := activeUser("403950-0000", domain.RoleTeacher, "goodpass")
	u.Active = false
	svc := newTestAuthService(t, newStubUserRepo(u))

	identity, err := svc.Authenticate(context.Background(), "403950-0000", "goodpass")
	if err != nil || identity != nil {
		t.Fatalf("expected none for deactivated account, got %+v, %v", identity, err)
	}
}

func TestAuthService_Authenticate_UnknownUser(t *testing.T) {
	svc := newTestAuthService(t, newStubUserRepo())

	identity, err := svc.Authenticate(context.Background(), "111111-1111", "whatever")
	if err != nil || identity != nil {
		t.Fatalf("expected none for unknown user, got %+v, %v", identity, err)
	}
}

func TestAuthService_Authenticate_ValidationFailsFast(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo)

	_, err := svc.Authenticate(context.Background(), "12345-6789", "pw")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("store must not be touched on invalid input, got %d calls", repo.calls)
	}
}

func TestAuthService_Authenticate_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection reset")
	svc := newTestAuthService(t, repo)

	if _, err := svc.Authenticate(context.Background(), "403950-0000", "pw"); err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}

func TestAuthService_Login_IssuesResolvableSession(t *testing.T) {
	repo := newStubUserRepo(activeUser("403950-0000", domain.RoleAdmin, "goodpass"))
	svc := newTestAuthService(t, repo)

	session, err := svc.Login(context.Background(), "403950-0000", "goodpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected token")
	}
	if got := session.ExpiresAt.Sub(session.IssuedAt); got != time.Hour {
		t.Fatalf("expected 1h lifetime, got %s", got)
	}

	resolved, ok := svc.Resolve(session.Token)
	if !ok {
		t.Fatalf("expected token to resolve")
	}
	if resolved.Identity != session.Identity {
		t.Fatalf("identity mismatch: %+v vs %+v", resolved.Identity, session.Identity)
	}
	if resolved.Identity.ID != "id-403950-0000" || resolved.Identity.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", resolved.Identity)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubUserRepo(activeUser("403950-0000", domain.RoleAdmin, "goodpass"))
	svc := newTestAuthService(t, repo)

	for _, tc := range []struct{ id, pw string }{
		{"403950-0000", "badpass"},
		{"999999-9999", "goodpass"},
	} {
		if _, err := svc.Login(context.Background(), tc.id, tc.pw); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", tc.id, err)
		}
	}
}

func TestAuthService_Resolve_RejectsGarbageAndResetTokens(t *testing.T) {
	svc := newTestAuthService(t, newStubUserRepo())

	if _, ok := svc.Resolve(""); ok {
		t.Fatalf("empty token must not resolve")
	}
	if _, ok := svc.Resolve("garbage"); ok {
		t.Fatalf("garbage token must not resolve")
	}

	reset, err := svc.tokens.Sign(domain.Claims{
		domain.ClaimSubject:    "id-1",
		domain.ClaimEmployeeID: "403950-0000",
		domain.ClaimRole:       "ADMIN",
		domain.ClaimPurpose:    domain.PurposePasswordReset,
	}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, ok := svc.Resolve(reset); ok {
		t.Fatalf("reset token must not authenticate a session")
	}
}

func TestAuthService_Resolve_ExpiryBoundary(t *testing.T) {
	base, _ := security.NewJWTIssuer(testSecret)
	now := time.Unix(1_700_000_000, 0)
	issuer := base.WithClock(func() time.Time { return now })

	maxAge := 24 * time.Hour
	repo := newStubUserRepo(activeUser("403950-0000", domain.RoleTeacher, "goodpass"))
	svc := NewAuthService(repo, plainHasher{}, issuer, AuthConfig{SessionMaxAge: maxAge}, zerolog.Nop())

	session, err := svc.Login(context.Background(), "403950-0000", "goodpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	now = time.Unix(1_700_000_000, 0).Add(maxAge - time.Second)
	if _, ok := svc.Resolve(session.Token); !ok {
		t.Fatalf("session should be valid at T+maxAge-1s")
	}
	now = time.Unix(1_700_000_000, 0).Add(maxAge + time.Second)
	if _, ok := svc.Resolve(session.Token); ok {
		t.Fatalf("session should be expired at T+maxAge+1s")
	}
}

func TestNewAuthService_DefaultMaxAge(t *testing.T) {
	issuer, _ := security.NewJWTIssuer(testSecret)
	svc := NewAuthService(newStubUserRepo(), plainHasher{}, issuer, AuthConfig{}, zerolog.Nop())
	if svc.SessionMaxAge() != DefaultSessionMaxAge {
		t.Fatalf("expected default max age, got %s", svc.SessionMaxAge())
	}
}
