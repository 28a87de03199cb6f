package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopfront/shopfront/internal/auth"
	"github.com/shopfront/shopfront/internal/db/gen"
)

// UserByEmail is the slice of gen.Queries the password provider reads.
type UserByEmail interface {
	GetAuthUserByEmail(ctx context.Context, email string) (gen.AuthUser, error)
}

var _ Provider = (*PasswordProvider)(nil)

type PasswordProvider struct {
	Q UserByEmail
}

func NewPasswordProvider(q UserByEmail) *PasswordProvider {
	return &PasswordProvider{Q: q}
}

func (p *PasswordProvider) Name() string {
	return auth.MethodPassword
}

func (p *PasswordProvider) Authenticate(ctx context.Context, email, password string) (auth.Principal, error) {
	email = auth.NormalizeEmail(email)
	if email == "" || password == "" {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	user, err := p.Q.GetAuthUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Principal{}, auth.ErrInvalidCredentials
		}
		return auth.Principal{}, err
	}
	if !user.IsActive {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return auth.Principal{}, err
	}
	if !match {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	role, err := auth.ParseRole(user.Role)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("user %d: %w", user.ID, err)
	}

	return auth.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   role,
		Method: auth.MethodPassword,
	}, nil
}
