package authn

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/shopfront/shopfront/internal/auth"
)

const (
	ContextKeyPrincipal = "auth_principal"
)

// PrincipalFromContext returns the principal attached by Gate or Identify.
func PrincipalFromContext(c *echo.Context) (auth.Principal, bool) {
	if c == nil {
		return auth.Principal{}, false
	}
	p, ok := c.Get(ContextKeyPrincipal).(auth.Principal)
	return p, ok
}

func isHX(c *echo.Context) bool {
	return strings.EqualFold(strings.TrimSpace(c.Request().Header.Get("HX-Request")), "true")
}

func SanitizeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || len(next) > 2048 {
		return ""
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}

	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || u.Scheme != "" {
		return ""
	}
	if u.Path == "/login" || strings.HasPrefix(u.Path, "/login/") {
		return ""
	}
	if strings.Contains(next, "\\") {
		return ""
	}
	if strings.HasPrefix(u.Path, "//") || strings.Contains(u.Path, "\\") {
		return ""
	}
	if next == "/" {
		return ""
	}
	return next
}
