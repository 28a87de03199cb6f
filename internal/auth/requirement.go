package auth

import "strings"

// Requirement is a predicate over a Principal guarding a protected page.
type Requirement interface {
	SatisfiedBy(Principal) bool
	String() string
}

type roleIs struct{ role Role }

// RoleIs is satisfied only by principals holding exactly role.
func RoleIs(role Role) Requirement {
	return roleIs{role: role}
}

func (r roleIs) SatisfiedBy(p Principal) bool {
	return p.Role.Valid() && p.Role == r.role
}

func (r roleIs) String() string {
	return "role==" + r.role.String()
}

type roleAtLeast struct{ role Role }

// RoleAtLeast is satisfied by principals whose role ranks at or above role.
func RoleAtLeast(role Role) Requirement {
	return roleAtLeast{role: role}
}

func (r roleAtLeast) SatisfiedBy(p Principal) bool {
	return p.Role.Valid() && p.Role.rank() >= r.role.rank()
}

func (r roleAtLeast) String() string {
	return "role>=" + r.role.String()
}

type anyOf []Requirement

// AnyOf is satisfied when at least one of reqs is. An empty AnyOf is never satisfied.
func AnyOf(reqs ...Requirement) Requirement {
	out := make(anyOf, 0, len(reqs))
	for _, r := range reqs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (a anyOf) SatisfiedBy(p Principal) bool {
	for _, r := range a {
		if r.SatisfiedBy(p) {
			return true
		}
	}
	return false
}

func (a anyOf) String() string {
	parts := make([]string, 0, len(a))
	for _, r := range a {
		parts = append(parts, r.String())
	}
	return "any(" + strings.Join(parts, ",") + ")"
}
