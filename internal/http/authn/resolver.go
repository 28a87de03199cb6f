package authn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shopfront/shopfront/internal/auth"
	"github.com/shopfront/shopfront/internal/db/gen"
	"github.com/shopfront/shopfront/internal/metrics"
)

const SessionKeyUserID = "auth_user_id"

// UserLookup loads the account behind a session.
type UserLookup interface {
	GetAuthUser(ctx context.Context, id int64) (gen.AuthUser, error)
}

// PrincipalResolver turns a request context into an auth.Resolution.
type PrincipalResolver interface {
	Resolve(ctx context.Context) auth.Resolution
}

// ResolverConfig holds everything the session resolver needs. There is no
// package-level auth state; build one config per server.
type ResolverConfig struct {
	Sessions *scs.SessionManager
	Users    UserLookup
	Logger   *slog.Logger
}

// Resolver reads the session cookie's user id and loads the matching account.
// It never writes to the session.
type Resolver struct {
	sessions *scs.SessionManager
	users    UserLookup
	logger   *slog.Logger
}

func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("authn: resolver needs a session manager")
	}
	if cfg.Users == nil {
		return nil, errors.New("authn: resolver needs a user lookup")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{sessions: cfg.Sessions, users: cfg.Users, logger: logger}, nil
}

// Resolve returns the request's principal, auth.Anonymous when there is no
// usable session, or a failed resolution when the lookup itself errored.
func (r *Resolver) Resolve(ctx context.Context) auth.Resolution {
	userID, err := r.sessionUserID(ctx)
	if err != nil {
		return r.fail(err)
	}
	if userID <= 0 {
		return auth.Anonymous()
	}

	user, err := r.users.GetAuthUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Anonymous()
		}
		return r.fail(err)
	}
	if !user.IsActive {
		return auth.Anonymous()
	}

	role, err := auth.ParseRole(user.Role)
	if err != nil {
		return r.fail(err)
	}

	return auth.Resolved(auth.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   role,
		Method: auth.MethodPassword,
	})
}

// sessionUserID reads the user id; scs panics when the session was never
// loaded into ctx, which is reported as an error.
func (r *Resolver) sessionUserID(ctx context.Context) (id int64, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("session not loaded: %v", rec)
		}
	}()
	return r.sessions.GetInt64(ctx, SessionKeyUserID), nil
}

func (r *Resolver) fail(cause error) auth.Resolution {
	metrics.SessionResolveFailuresTotal.Inc()
	r.logger.Error("session resolve failed", "error", cause)
	return auth.Failed(fmt.Errorf("%w: %w", auth.ErrResolverFailure, cause))
}

// StartSession binds the session to a user after a successful login. The
// token is renewed first to prevent fixation.
func StartSession(ctx context.Context, sessions *scs.SessionManager, userID int64) error {
	if err := sessions.RenewToken(ctx); err != nil {
		return err
	}
	sessions.Put(ctx, SessionKeyUserID, userID)
	return nil
}

func EndSession(ctx context.Context, sessions *scs.SessionManager) error {
	return sessions.Destroy(ctx)
}
