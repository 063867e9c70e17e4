package domain

import "time"

// Claim keys shared by session and reset tokens.
const (
	ClaimSubject    = "sub"
	ClaimEmployeeID = "employeeId"
	ClaimRole       = "role"
	ClaimPurpose    = "purpose"
	ClaimTokenID    = "jti"
	ClaimIssuedAt   = "iat"
	ClaimExpiresAt  = "exp"
)

// PurposePasswordReset tags reset tokens; tokens without it cannot reset passwords.
const PurposePasswordReset = "password_reset"

// ResetTokenTTL bounds the life of a reset token.
const ResetTokenTTL = time.Hour

// Claims is the decoded payload of a verified token.
type Claims map[string]any

// String returns the string claim at key, or "" when absent or not a string.
func (c Claims) String(key string) string {
	v, _ := c[key].(string)
	return v
}

// Time returns a numeric date claim (seconds since epoch) as UTC time.
func (c Claims) Time(key string) time.Time {
	switch v := c[key].(type) {
	case float64:
		return time.Unix(int64(v), 0).UTC()
	case int64:
		return time.Unix(v, 0).UTC()
	case int:
		return time.Unix(int64(v), 0).UTC()
	}
	return time.Time{}
}

// ResetNotice is handed to the delivery channel once a reset token is issued.
type ResetNotice struct {
	EmployeeID string    `json:"employeeId" bson:"employee_id"`
	Name       string    `json:"name" bson:"name"`
	Token      string    `json:"-" bson:"token"`
	Link       string    `json:"link" bson:"link"`
	ExpiresAt  time.Time `json:"expiresAt" bson:"expires_at"`
}
