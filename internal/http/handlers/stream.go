package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/shopfront/shopfront/internal/http/requestid"
	"github.com/shopfront/shopfront/internal/progressive"
)

// stream sends doc progressively. Once the head is written the status is
// committed, so later failures are logged rather than returned.
func (h *Handlers) stream(c *echo.Context, doc progressive.Document, regions ...*progressive.Region) error {
	header := c.Response().Header()
	header.Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	header.Set("Cache-Control", "no-store")
	header.Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)

	err := progressive.Stream(c.Request().Context(), c.Response(), doc, regions...)

	logger := c.Logger()
	reqID := requestid.FromContext(c)
	for _, r := range regions {
		if lerr := r.Err(); lerr != nil {
			logger.Warn("region rendered fallback", "region", r.ID(), "error", lerr, "request_id", reqID)
		}
	}
	switch {
	case err == nil:
	case errors.Is(err, progressive.ErrCanceled), errors.Is(err, context.Canceled):
		logger.Debug("page stream canceled", "path", c.Request().URL.Path, "request_id", reqID)
	default:
		logger.Error("page stream failed", "path", c.Request().URL.Path, "error", err, "request_id", reqID)
	}
	return nil
}

// renderFragment resolves a single region for an htmx request.
func (h *Handlers) renderFragment(c *echo.Context, r *progressive.Region) error {
	varyOnHX(c)
	c.Response().Header().Set("Cache-Control", "no-store")
	if err := h.RenderComponent(c, r.Content()); err != nil {
		return err
	}
	if lerr := r.Err(); lerr != nil {
		c.Logger().Warn("region rendered fallback", "region", r.ID(), "error", lerr, "request_id", requestid.FromContext(c))
	}
	return nil
}
