// Package requestid tags every request with an X-Request-ID used in logs and
// in client-facing error references.
package requestid

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const (
	HeaderName = "X-Request-ID"
	ContextKey = "request_id"

	maxLength = 64
)

// Middleware accepts a well-formed inbound id or generates a new one.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(HeaderName))
			if !valid(id) {
				id = uuid.NewString()
			}
			c.Set(ContextKey, id)
			c.Response().Header().Set(HeaderName, id)
			return next(c)
		}
	}
}

func FromContext(c *echo.Context) string {
	if c == nil {
		return ""
	}
	id, _ := c.Get(ContextKey).(string)
	return id
}

func valid(id string) bool {
	if id == "" || len(id) > maxLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
