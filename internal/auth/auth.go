package auth

import "strings"

const (
	MethodPassword = "password"
)

// Principal is the identity resolved for a single request.
type Principal struct {
	UserID int64
	Email  string
	Role   Role
	Method string // "password" now; "oidc" later
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
