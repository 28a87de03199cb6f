package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
)

func isHX(c *echo.Context) bool {
	if c == nil || c.Request() == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(c.Request().Header.Get("HX-Request")), "true")
}

// redirect sends browsers a 303 and htmx an HX-Redirect.
func redirect(c *echo.Context, url string) error {
	varyOnHX(c)
	if isHX(c) {
		setHXRedirect(c, url)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, url)
}

func setHXRedirect(c *echo.Context, url string) {
	if c == nil {
		return
	}
	c.Response().Header().Set("HX-Redirect", url)
}

// varyOnHX adds HX-Request to Vary once, keeping existing tokens and a
// wildcard.
func varyOnHX(c *echo.Context) {
	if c == nil {
		return
	}
	header := c.Response().Header()
	tokens := make([]string, 0, 2)
	for _, line := range header.Values(echo.HeaderVary) {
		for _, token := range strings.Split(line, ",") {
			token = strings.TrimSpace(token)
			switch {
			case token == "":
			case token == "*", strings.EqualFold(token, "HX-Request"):
				return
			default:
				tokens = append(tokens, token)
			}
		}
	}
	header.Set(echo.HeaderVary, strings.Join(append(tokens, "HX-Request"), ", "))
}
