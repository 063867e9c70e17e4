package handler

import (
	"time"

	"github.com/schoolrecords/records-portal/internal/core/domain"
)

type loginRequest struct {
	EmployeeID string `json:"employeeId" validate:"required,employee_id"`
	Password   string `json:"password"   validate:"required"`
}

type sessionResponse struct {
	User      domain.Identity `json:"user"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

type resetRequest struct {
	EmployeeID string `json:"employeeId" validate:"required,employee_id"`
}

type resetConfirmRequest struct {
	Token           string `json:"token"           validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type signupRequest struct {
	EmployeeID string `json:"employeeId" validate:"required,employee_id"`
	FirstName  string `json:"firstName"  validate:"required,max=100"`
	LastName   string `json:"lastName"   validate:"required,max=100"`
	Role       string `json:"role"       validate:"required,oneof=ADMIN PRINCIPAL TEACHER REGISTRAR SCHOOL_ADMIN"`
}

type signupResponse struct {
	User            *domain.User `json:"user"`
	DefaultPassword string       `json:"defaultPassword"`
}

type statusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON envelope for every API error. Fields is set for
// validation failures only.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
