package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolrecords/records-portal/internal/api/metrics"
	"github.com/schoolrecords/records-portal/internal/core/domain"
	"github.com/schoolrecords/records-portal/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Signup creates a staff record with the default password. While no record
// exists the call is open; afterwards it needs an ADMIN session.
//
// @Summary      Create a staff account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Staff details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/auth/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.Signup(c.Request().Context(), optionalIdentity(c), ports.SignupInput{
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	mode := "admin"
	if res.Bootstrap {
		mode = "bootstrap"
	}
	metrics.SignupsTotal.WithLabelValues(mode).Inc()

	return c.JSON(http.StatusCreated, signupResponse{User: res.User, DefaultPassword: res.DefaultPassword})
}

// SetStatus activates or deactivates an account.
//
// @Summary      Change account status
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        employeeId  path      string         true  "Employee ID"
// @Param        body        body      statusRequest  true  "Desired status"
// @Success      200         {object}  domain.User
// @Failure      400         {object}  ErrorResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      403         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /api/users/{employeeId}/status [put]
func (h *UserHandler) SetStatus(c echo.Context) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.SetActive(c.Request().Context(), session.Identity, c.Param("employeeId"), *req.Active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
