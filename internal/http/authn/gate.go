package authn

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/shopfront/shopfront/internal/auth"
	"github.com/shopfront/shopfront/internal/http/requestid"
	"github.com/shopfront/shopfront/internal/metrics"
)

const DefaultDenyPath = "/"

var errNoResolver = errors.New("authn: gate has no resolver")

type GateOptions struct {
	// DenyPath receives denied requests. Defaults to "/".
	DenyPath string
	Logger   *slog.Logger
}

// Gate authorizes the request against req before the wrapped handler runs.
// Denied requests are redirected to DenyPath with an empty body; the wrapped
// handler is never called for them. Resolver failures deny.
func Gate(resolver PrincipalResolver, req auth.Requirement, opts GateOptions) echo.MiddlewareFunc {
	denyPath := opts.DenyPath
	if denyPath == "" {
		denyPath = DefaultDenyPath
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	label := "none"
	if req != nil {
		label = req.String()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			res := auth.Failed(errNoResolver)
			if resolver != nil {
				res = resolver.Resolve(c.Request().Context())
			}

			decision := auth.Authorize(res, req)
			if !decision.Allowed() {
				metrics.GateDecisionsTotal.WithLabelValues(label, "deny", decision.Reason().String()).Inc()
				logger.Info("access denied",
					"requirement", label,
					"reason", decision.Reason().String(),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"request_id", requestid.FromContext(c),
				)
				return denyRedirect(c, denyPath)
			}

			metrics.GateDecisionsTotal.WithLabelValues(label, "allow", auth.ReasonNone.String()).Inc()
			c.Set(ContextKeyPrincipal, res.Principal)
			return next(c)
		}
	}
}

// Identify attaches the principal, when there is one, for pages that render
// for everybody. Resolver failures leave the request anonymous.
func Identify(resolver PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			if resolver != nil {
				if res := resolver.Resolve(c.Request().Context()); res.Err == nil && res.Present {
					c.Set(ContextKeyPrincipal, res.Principal)
				}
			}
			return next(c)
		}
	}
}

func denyRedirect(c *echo.Context, path string) error {
	h := c.Response().Header()
	h.Set("Cache-Control", "no-store")
	h.Add("Vary", "HX-Request")
	if isHX(c) {
		h.Set("HX-Redirect", path)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, path)
}
