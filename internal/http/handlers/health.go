package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
)

const healthTimeout = 2 * time.Second

// HandleHealthz reports ok when the database answers a ping.
func (h *Handlers) HandleHealthz(c *echo.Context) error {
	if h.DB == nil {
		return c.String(http.StatusOK, "ok")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		c.Logger().Warn("health check failed", "error", err)
		return c.String(http.StatusServiceUnavailable, "unavailable")
	}
	return c.String(http.StatusOK, "ok")
}
