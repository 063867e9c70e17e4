package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schoolrecords/records-portal/internal/api/middleware"
	"github.com/schoolrecords/records-portal/internal/core/domain"
	"github.com/schoolrecords/records-portal/internal/core/ports"
)

const testCookie = "records_session"

type stubSessions struct {
	loginFn  func(ctx context.Context, employeeID, password string) (*domain.Session, error)
	sessions map[string]*domain.Session
}

func (s *stubSessions) Login(ctx context.Context, employeeID, password string) (*domain.Session, error) {
	return s.loginFn(ctx, employeeID, password)
}

func (s *stubSessions) Resolve(token string) (*domain.Session, bool) {
	session, ok := s.sessions[token]
	return session, ok
}

type stubResetService struct {
	requestFn func(ctx context.Context, employeeID string) error
	confirmFn func(ctx context.Context, in ports.ConfirmResetInput) error
}

func (s *stubResetService) RequestReset(ctx context.Context, employeeID string) error {
	return s.requestFn(ctx, employeeID)
}

func (s *stubResetService) ConfirmReset(ctx context.Context, in ports.ConfirmResetInput) error {
	return s.confirmFn(ctx, in)
}

type stubUserService struct {
	signupFn    func(ctx context.Context, actor *domain.Identity, in ports.SignupInput) (*ports.SignupResult, error)
	setActiveFn func(ctx context.Context, actor domain.Identity, employeeID string, active bool) (*domain.User, error)
}

func (s *stubUserService) Signup(ctx context.Context, actor *domain.Identity, in ports.SignupInput) (*ports.SignupResult, error) {
	return s.signupFn(ctx, actor, in)
}

func (s *stubUserService) SetActive(ctx context.Context, actor domain.Identity, employeeID string, active bool) (*domain.User, error) {
	return s.setActiveFn(ctx, actor, employeeID, active)
}

func adminSession() *domain.Session {
	return &domain.Session{
		Token:     "admin-token",
		Identity:  domain.Identity{ID: "u1", EmployeeID: "100000-0001", Name: "Ada Admin", Role: domain.RoleAdmin},
		IssuedAt:  time.Unix(1_700_000_000, 0).UTC(),
		ExpiresAt: time.Unix(1_700_086_400, 0).UTC(),
	}
}

// serve runs h behind the Session middleware so handlers see the same
// context they would in the router.
func serve(t *testing.T, sessions *stubSessions, h echo.HandlerFunc, method, path, body string, setup func(*http.Request)) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	e.Renderer = NewTemplateRenderer()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if sessions == nil {
		sessions = &stubSessions{}
	}
	err := middleware.Session(sessions, testCookie)(h)(c)
	return rec, err
}

func withCookie(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
}
