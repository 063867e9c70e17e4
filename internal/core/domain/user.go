package domain

import (
	"strings"
	"time"
)

// Role is the closed set of staff roles a record can carry.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RolePrincipal   Role = "PRINCIPAL"
	RoleTeacher     Role = "TEACHER"
	RoleRegistrar   Role = "REGISTRAR"
	RoleSchoolAdmin Role = "SCHOOL_ADMIN"
)

// Roles lists every valid role in declaration order.
var Roles = []Role{RoleAdmin, RolePrincipal, RoleTeacher, RoleRegistrar, RoleSchoolAdmin}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is the credential record owned by the store.
type User struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DisplayName joins first and last name.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Identity returns the minimal public profile of u.
func (u *User) Identity() Identity {
	return Identity{
		ID:         u.ID,
		EmployeeID: u.EmployeeID,
		Name:       u.DisplayName(),
		Role:       u.Role,
	}
}

// Identity is what the rest of the system knows about an authenticated user.
type Identity struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
}

// Session is a verified session token together with the identity it carries.
type Session struct {
	Token     string    `json:"-"`
	Identity  Identity  `json:"user"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
