package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schoolrecords/records-portal/internal/core/domain"
	"github.com/schoolrecords/records-portal/internal/core/ports"
)

// MinPasswordLength applies to passwords chosen through the reset flow.
const MinPasswordLength = 8

// ResetConfig configures PasswordResetService.
type ResetConfig struct {
	// BaseURL prefixes the reset link handed to the delivery channel.
	BaseURL string
	// Now overrides the clock in tests.
	Now func() time.Time
}

// PasswordResetService implements ports.PasswordResetService.
type PasswordResetService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	denylist ports.TokenDenylist
	delivery ports.ResetDelivery
	cfg      ResetConfig
	log      zerolog.Logger
}

func NewPasswordResetService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	denylist ports.TokenDenylist,
	delivery ports.ResetDelivery,
	cfg ResetConfig,
	log zerolog.Logger,
) *PasswordResetService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &PasswordResetService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		denylist: denylist,
		delivery: delivery,
		cfg:      cfg,
		log:      log,
	}
}

// RequestReset issues a reset token for an active account and hands it to the
// delivery channel. Unknown and deactivated ids succeed silently.
func (s *PasswordResetService) RequestReset(ctx context.Context, employeeID string) error {
	if err := domain.CheckEmployeeID(employeeID); err != nil {
		return err
	}

	user, err := s.repo.FindByEmployeeID(ctx, employeeID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.log.Info().Str("employee_id", employeeID).Msg("reset requested for unknown employee id")
		return nil
	case err != nil:
		return fmt.Errorf("request reset: %w", err)
	case !user.Active:
		s.log.Info().Str("employee_id", employeeID).Msg("reset requested for deactivated account")
		return nil
	}

	token, err := s.tokens.Sign(domain.Claims{
		domain.ClaimSubject:    user.ID,
		domain.ClaimEmployeeID: user.EmployeeID,
		domain.ClaimPurpose:    domain.PurposePasswordReset,
		domain.ClaimTokenID:    uuid.NewString(),
	}, domain.ResetTokenTTL)
	if err != nil {
		return fmt.Errorf("request reset: %w", err)
	}

	notice := domain.ResetNotice{
		EmployeeID: user.EmployeeID,
		Name:       user.DisplayName(),
		Token:      token,
		Link:       s.cfg.BaseURL + "/auth/reset-password?token=" + url.QueryEscape(token),
		ExpiresAt:  s.cfg.Now().Add(domain.ResetTokenTTL).UTC(),
	}
	if err := s.delivery.Deliver(ctx, notice); err != nil {
		return fmt.Errorf("request reset: deliver: %w", err)
	}

	s.log.Info().Str("employee_id", employeeID).Msg("reset token issued")
	return nil
}

// ConfirmReset verifies the token, consumes it, and stores the new password.
func (s *PasswordResetService) ConfirmReset(ctx context.Context, in ports.ConfirmResetInput) error {
	if err := checkConfirmInput(in); err != nil {
		return err
	}

	claims, err := s.tokens.Verify(in.Token)
	if err != nil {
		return err
	}
	if claims.String(domain.ClaimPurpose) != domain.PurposePasswordReset {
		return domain.ErrWrongTokenType
	}

	employeeID := claims.String(domain.ClaimEmployeeID)
	tokenID := claims.String(domain.ClaimTokenID)
	if employeeID == "" || tokenID == "" {
		return fmt.Errorf("%w: missing reset claims", domain.ErrInvalidToken)
	}

	user, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("confirm reset: %w", err)
	}
	if !user.Active {
		return domain.ErrDeactivated
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return fmt.Errorf("confirm reset: hash: %w", err)
	}

	first, err := s.denylist.Consume(ctx, tokenID, claims.Time(domain.ClaimExpiresAt))
	if err != nil {
		return fmt.Errorf("confirm reset: consume token: %w", err)
	}
	if !first {
		return fmt.Errorf("%w: token already used", domain.ErrInvalidToken)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hash, s.cfg.Now().UTC()); err != nil {
		if relErr := s.denylist.Release(ctx, tokenID); relErr != nil {
			s.log.Warn().Err(relErr).Str("employee_id", employeeID).Msg("failed to release reset token after write error")
		}
		return fmt.Errorf("confirm reset: %w", err)
	}

	s.log.Info().Str("employee_id", employeeID).Msg("password reset completed")
	return nil
}

// checkConfirmInput runs before any token or store access.
func checkConfirmInput(in ports.ConfirmResetInput) error {
	verr := domain.NewValidationError()
	if in.Token == "" {
		verr.Add("token", "token is required")
	}
	if len(in.NewPassword) < MinPasswordLength {
		verr.Add("newPassword", fmt.Sprintf("newPassword must be at least %d characters", MinPasswordLength))
	}
	if in.NewPassword != in.ConfirmPassword {
		verr.Add("confirmPassword", "passwords do not match")
	}
	return verr.OrNil()
}
