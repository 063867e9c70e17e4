package ports

import (
	"context"
	"time"

	"github.com/schoolrecords/records-portal/internal/core/domain"
)

// UserRepository is the credential store. Lookups return domain.ErrNotFound
// when no record matches.
type UserRepository interface {
	FindByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the employee id is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
	// Count is only used to detect the bootstrap state.
	Count(ctx context.Context) (int64, error)
}
