package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopfront/shopfront/internal/analytics"
	"github.com/shopfront/shopfront/internal/catalog"
	"github.com/shopfront/shopfront/internal/config"
	"github.com/shopfront/shopfront/internal/db/gen"
	httpapp "github.com/shopfront/shopfront/internal/http"
	"github.com/shopfront/shopfront/internal/http/authn"
	"github.com/shopfront/shopfront/internal/metrics"
	"github.com/shopfront/shopfront/internal/money"
	"github.com/spf13/cobra"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	sessionCookieName = "shopfront_session"
)

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Run the HTTP server.",
	Args:        cobra.NoArgs,
	Annotations: structuredLogging(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	queries := gen.New(pool)

	store := pgxstore.New(pool)
	defer store.StopCleanup()
	sessions := newSessionManager(cfg, store)

	resolver, err := authn.NewResolver(authn.ResolverConfig{
		Sessions: sessions,
		Users:    queries,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	srv, err := httpapp.NewEchoServer(cfg, httpapp.Deps{
		Sessions:  sessions,
		Resolver:  resolver,
		Users:     queries,
		Catalog:   catalog.NewStore(queries),
		Analytics: analytics.NewStore(queries, money.DefaultCurrency),
		DB:        pool,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	_, metricsErrCh := metrics.StartServer(ctx, cfg.MetricsAddr)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-metricsErrCh:
		return err
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func newSessionManager(cfg config.Config, store scs.Store) *scs.SessionManager {
	sessions := scs.New()
	sessions.Store = store
	sessions.Lifetime = cfg.SessionLifetime
	sessions.Cookie.Name = sessionCookieName
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.Path = "/"
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = cfg.AuthCookieSecure
	return sessions
}
