package handlers

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/shopfront/shopfront/internal/auth"
	"github.com/shopfront/shopfront/internal/auth/providers"
	"github.com/shopfront/shopfront/internal/db/gen"
	"github.com/shopfront/shopfront/internal/http/authn"
	"github.com/shopfront/shopfront/internal/http/viewmodels"
	"github.com/shopfront/shopfront/internal/http/views"
)

var errSessionsNotConfigured = errors.New("auth sessions not configured")

const invalidCredentialsMessage = "Invalid email or password."

func (h *Handlers) HandleLoginGet(c *echo.Context) error {
	if h.Sessions == nil || h.Users == nil {
		return errSessionsNotConfigured
	}
	if _, ok := authn.PrincipalFromContext(c); ok {
		return redirect(c, "/")
	}

	count, err := h.Users.CountAuthUsers(c.Request().Context())
	if err != nil {
		return err
	}

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.LoginViewData{
		CSRFToken:     csrfToken,
		Next:          authn.SanitizeNext(c.QueryParam("next")),
		SetupRequired: count == 0,
		Toast:         h.popFlashToast(c),
	}
	return h.RenderComponent(c, views.LoginPage(data))
}

func (h *Handlers) HandleLoginPost(c *echo.Context) error {
	if h.Sessions == nil || h.Users == nil {
		return errSessionsNotConfigured
	}

	ctx := c.Request().Context()

	count, err := h.Users.CountAuthUsers(ctx)
	if err != nil {
		return err
	}

	email := auth.NormalizeEmail(c.FormValue("email"))
	password := c.FormValue("password")
	next := authn.SanitizeNext(c.FormValue("next"))

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.LoginViewData{
		CSRFToken: csrfToken,
		Email:     email,
		Next:      next,
	}

	if count == 0 {
		data.SetupRequired = true
		return h.RenderComponent(c, views.LoginPage(data))
	}

	if email == "" || strings.TrimSpace(password) == "" {
		data.ErrorMessage = invalidCredentialsMessage
		return h.RenderComponent(c, views.LoginPage(data))
	}

	principal, err := providers.NewPasswordProvider(h.Users).Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			data.ErrorMessage = invalidCredentialsMessage
			return h.RenderComponent(c, views.LoginPage(data))
		}
		return err
	}

	if err := authn.StartSession(ctx, h.Sessions, principal.UserID); err != nil {
		return err
	}

	if err := h.Users.UpdateAuthUserLoginMeta(ctx, gen.UpdateAuthUserLoginMetaParams{
		ID:          principal.UserID,
		LastLoginAt: pgtype.Timestamptz{Time: h.now(), Valid: true},
		LastLoginIp: strings.TrimSpace(c.RealIP()),
	}); err != nil {
		c.Logger().Warn("record login", "user_id", principal.UserID, "error", err)
	}

	if next == "" {
		next = "/"
	}
	return redirect(c, next)
}

func (h *Handlers) HandleLogoutPost(c *echo.Context) error {
	if h.Sessions == nil {
		return errSessionsNotConfigured
	}

	if err := authn.EndSession(c.Request().Context(), h.Sessions); err != nil {
		return err
	}
	h.setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "Signed out",
	})
	return redirect(c, "/login")
}

