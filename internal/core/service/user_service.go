package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolrecords/records-portal/internal/core/domain"
	"github.com/schoolrecords/records-portal/internal/core/ports"
)

// UserConfig configures UserService.
type UserConfig struct {
	// DefaultPassword is assigned to every record created through signup.
	DefaultPassword string
	Now             func() time.Time
}

// UserService implements ports.UserService.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	cfg    UserConfig
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, cfg UserConfig, log zerolog.Logger) *UserService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &UserService{repo: repo, hasher: hasher, cfg: cfg, log: log}
}

// Signup creates a staff record. The first record can be created by anyone;
// after that the actor must be an authenticated ADMIN.
func (s *UserService) Signup(ctx context.Context, actor *domain.Identity, in ports.SignupInput) (*ports.SignupResult, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := checkSignupInput(in); err != nil {
		return nil, err
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("signup: count users: %w", err)
	}
	bootstrap := count == 0
	if !bootstrap {
		if actor == nil {
			return nil, domain.ErrUnauthorized
		}
		if actor.Role != domain.RoleAdmin {
			return nil, domain.ErrForbidden
		}
	}

	hash, err := s.hasher.Hash(s.cfg.DefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("signup: hash: %w", err)
	}

	now := s.cfg.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		EmployeeID:   in.EmployeeID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	level := zerolog.InfoLevel
	if bootstrap {
		level = zerolog.WarnLevel
	}
	ev := s.log.WithLevel(level).
		Str("employee_id", created.EmployeeID).
		Str("role", string(created.Role)).
		Bool("bootstrap", bootstrap)
	if actor != nil {
		ev = ev.Str("created_by", actor.EmployeeID)
	}
	ev.Msg("user created")

	return &ports.SignupResult{
		User:            created,
		DefaultPassword: s.cfg.DefaultPassword,
		Bootstrap:       bootstrap,
	}, nil
}

// SetActive enables or disables an account. Admins cannot deactivate themselves.
func (s *UserService) SetActive(ctx context.Context, actor domain.Identity, employeeID string, active bool) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := domain.CheckEmployeeID(employeeID); err != nil {
		return nil, err
	}
	if !active && actor.EmployeeID == employeeID {
		return nil, domain.NewValidationError().Add("active", "you cannot deactivate your own account")
	}

	user, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("set active: %w", err)
	}
	if user.Active == active {
		return user, nil
	}

	now := s.cfg.Now().UTC()
	if err := s.repo.SetActive(ctx, user.ID, active, now); err != nil {
		return nil, fmt.Errorf("set active: %w", err)
	}
	user.Active = active
	user.UpdatedAt = now

	s.log.Info().
		Str("employee_id", employeeID).
		Bool("active", active).
		Str("changed_by", actor.EmployeeID).
		Msg("account status changed")

	return user, nil
}

func checkSignupInput(in ports.SignupInput) error {
	verr := domain.NewValidationError()
	if !domain.ValidEmployeeID(in.EmployeeID) {
		verr.Add("employeeId", "employeeId must match 000000-0000")
	}
	if in.FirstName == "" {
		verr.Add("firstName", "firstName is required")
	}
	if in.LastName == "" {
		verr.Add("lastName", "lastName is required")
	}
	if !in.Role.Valid() {
		verr.Add("role", "role must be one of: ADMIN PRINCIPAL TEACHER REGISTRAR SCHOOL_ADMIN")
	}
	return verr.OrNil()
}
