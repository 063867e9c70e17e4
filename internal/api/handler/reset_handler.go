package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolrecords/records-portal/internal/api/metrics"
	"github.com/schoolrecords/records-portal/internal/core/domain"
	"github.com/schoolrecords/records-portal/internal/core/ports"
)

const resetRequestedMessage = "If the employee ID belongs to an active account, password reset instructions have been sent."

type ResetHandler struct {
	service ports.PasswordResetService
}

func NewResetHandler(service ports.PasswordResetService) *ResetHandler {
	return &ResetHandler{service: service}
}

// Request starts a password reset. The response is identical whether or not
// the employee id exists.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetRequest  true  "Employee ID"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *ResetHandler) Request(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.RequestReset(c.Request().Context(), req.EmployeeID); err != nil {
		return err
	}
	metrics.ResetRequestsTotal.Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: resetRequestedMessage})
}

// Confirm sets a new password using a reset token.
//
// @Summary      Confirm a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetConfirmRequest  true  "Token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/auth/reset-password [put]
func (h *ResetHandler) Confirm(c echo.Context) error {
	var req resetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.ResetConfirmationsTotal.WithLabelValues("invalid_input").Inc()
		return err
	}

	err := h.service.ConfirmReset(c.Request().Context(), ports.ConfirmResetInput{
		Token:           req.Token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		metrics.ResetConfirmationsTotal.WithLabelValues(confirmResult(err)).Inc()
		return err
	}
	metrics.ResetConfirmationsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Password has been reset. You can now sign in."})
}

func confirmResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, domain.ErrWrongTokenType):
		return "wrong_type"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_input"
	default:
		return "error"
	}
}
