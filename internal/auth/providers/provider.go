package providers

import (
	"context"

	"github.com/shopfront/shopfront/internal/auth"
)

// Provider verifies login credentials and returns the principal they belong to.
type Provider interface {
	Name() string
	Authenticate(ctx context.Context, email, password string) (auth.Principal, error)
}
