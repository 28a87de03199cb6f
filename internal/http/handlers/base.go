// Package handlers contains HTTP handler logic split by page.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/shopfront/shopfront/internal/analytics"
	"github.com/shopfront/shopfront/internal/auth/providers"
	"github.com/shopfront/shopfront/internal/catalog"
	"github.com/shopfront/shopfront/internal/config"
	"github.com/shopfront/shopfront/internal/db/gen"
	"github.com/shopfront/shopfront/internal/http/authn"
	"github.com/shopfront/shopfront/internal/http/requestid"
	"github.com/shopfront/shopfront/internal/http/viewmodels"
)

// InternalErrorCode is a stable error code safe to return to clients.
const InternalErrorCode = "INTERNAL_ERROR"

// UserStore is the account access the login pages need.
type UserStore interface {
	providers.UserByEmail
	CountAuthUsers(ctx context.Context) (int64, error)
	UpdateAuthUserLoginMeta(ctx context.Context, arg gen.UpdateAuthUserLoginMetaParams) error
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups all HTTP handlers and shared dependencies.
type Handlers struct {
	Cfg       config.Config
	Sessions  *scs.SessionManager
	Users     UserStore
	Catalog   catalog.Lister
	Analytics analytics.Source
	DB        Pinger
	// Now defaults to time.Now.
	Now func() time.Time
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// LayoutData builds the common layout data for page rendering.
func (h *Handlers) LayoutData(c *echo.Context, title string) viewmodels.LayoutData {
	principal, ok := authn.PrincipalFromContext(c)
	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)

	layout := viewmodels.LayoutData{
		Title:      title,
		CSRFToken:  csrfToken,
		Toast:      h.popFlashToast(c),
		ActivePath: c.Request().URL.Path,
	}
	if ok {
		layout.UserEmail = principal.Email
		layout.UserRole = principal.Role.String()
		layout.IsAdmin = principal.IsAdmin()
	}
	return layout
}

// RenderComponent renders a templ component as the response.
func (h *Handlers) RenderComponent(c *echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	if err := component.Render(c.Request().Context(), c.Response()); err != nil {
		return h.RenderError(c, err)
	}
	return nil
}

// RenderError returns a plain text error response.
func (h *Handlers) RenderError(c *echo.Context, err error) error {
	requestID := requestid.FromContext(c)
	path := ""
	if req := c.Request(); req != nil && req.URL != nil {
		path = req.URL.Path
	}
	method := ""
	if req := c.Request(); req != nil {
		method = req.Method
	}
	c.Logger().Error("http error",
		"request_id", requestID,
		"method", method,
		"path", path,
		"ip", c.RealIP(),
		"error", err,
	)

	msg := "Internal server error."
	if requestID != "" {
		msg = fmt.Sprintf("%s Reference: %s.", msg, requestID)
	}
	msg = fmt.Sprintf("%s Code: %s.", msg, InternalErrorCode)
	return c.String(http.StatusInternalServerError, msg)
}

// RenderNotFound returns a 404 response.
func RenderNotFound(c *echo.Context) error {
	return c.String(http.StatusNotFound, "404 page not found")
}
