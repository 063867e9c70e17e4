package ports

import (
	"context"

	"github.com/schoolrecords/records-portal/internal/core/domain"
)

// SignupInput carries the fields of a new staff record.
type SignupInput struct {
	EmployeeID string
	FirstName  string
	LastName   string
	Role       domain.Role
}

// SignupResult is the created record and the password it was given.
type SignupResult struct {
	User            *domain.User
	DefaultPassword string
	Bootstrap       bool
}

// UserService manages staff records.
type UserService interface {
	// Signup is open while the store is empty; afterwards actor must be an ADMIN.
	Signup(ctx context.Context, actor *domain.Identity, in SignupInput) (*SignupResult, error)
	SetActive(ctx context.Context, actor domain.Identity, employeeID string, active bool) (*domain.User, error)
}
