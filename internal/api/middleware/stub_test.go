package middleware

import (
	"context"

	"github.com/schoolrecords/records-portal/internal/core/domain"
)

type stubSessions struct {
	sessions map[string]*domain.Session
}

func (s *stubSessions) Login(context.Context, string, string) (*domain.Session, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubSessions) Resolve(token string) (*domain.Session, bool) {
	session, ok := s.sessions[token]
	return session, ok
}

func withSession(token string, role domain.Role) *stubSessions {
	return &stubSessions{sessions: map[string]*domain.Session{
		token: {Token: token, Identity: domain.Identity{ID: "u1", EmployeeID: "403950-0000", Role: role}},
	}}
}
