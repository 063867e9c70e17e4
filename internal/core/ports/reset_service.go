package ports

import "context"

// ConfirmResetInput is phase two of the password reset exchange.
type ConfirmResetInput struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

// PasswordResetService runs the two-phase reset exchange.
type PasswordResetService interface {
	// RequestReset never reveals whether the employee id exists; only
	// malformed input and infrastructure failures return an error.
	RequestReset(ctx context.Context, employeeID string) error
	ConfirmReset(ctx context.Context, in ConfirmResetInput) error
}
