package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUnknownRole        = errors.New("auth: unknown role")

	// Gate deny reasons.
	ErrNoSession       = errors.New("auth: no session")
	ErrRoleMismatch    = errors.New("auth: role does not satisfy requirement")
	ErrResolverFailure = errors.New("auth: session resolver failure")
)
