package auth

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. The zero value is RoleGuest.
type Role uint8

const (
	RoleGuest Role = iota
	RoleUser
	RoleAdmin
)

var roleNames = [...]string{
	RoleGuest: "guest",
	RoleUser:  "user",
	RoleAdmin: "admin",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return int(r) < len(roleNames)
}

// rank orders roles by privilege; unknown roles rank below guest.
func (r Role) rank() int {
	if !r.Valid() {
		return -1
	}
	return int(r)
}

// ParseRole maps a stored role name to a Role.
func ParseRole(raw string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for i, n := range roleNames {
		if n == name {
			return Role(i), nil
		}
	}
	return RoleGuest, fmt.Errorf("%w: %q", ErrUnknownRole, raw)
}

// Roles lists every declared role in privilege order.
func Roles() []Role {
	out := make([]Role, 0, len(roleNames))
	for i := range roleNames {
		out = append(out, Role(i))
	}
	return out
}
