package domain

import "regexp"

// employeeIDPattern is six digits, a hyphen, then four digits (e.g. 403950-0000).
var employeeIDPattern = regexp.MustCompile(`^\d{6}-\d{4}$`)

// ValidEmployeeID reports whether id has the employee identifier shape.
func ValidEmployeeID(id string) bool {
	return employeeIDPattern.MatchString(id)
}

const employeeIDMessage = "employeeId must match 000000-0000"

// CheckCredentials validates the shape of a login attempt.
func CheckCredentials(employeeID, password string) error {
	verr := NewValidationError()
	if !ValidEmployeeID(employeeID) {
		verr.Add("employeeId", employeeIDMessage)
	}
	if password == "" {
		verr.Add("password", "password is required")
	}
	return verr.OrNil()
}

// CheckEmployeeID validates a bare employee identifier.
func CheckEmployeeID(employeeID string) error {
	if !ValidEmployeeID(employeeID) {
		return NewValidationError().Add("employeeId", employeeIDMessage)
	}
	return nil
}
