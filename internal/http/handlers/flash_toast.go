package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/shopfront/shopfront/internal/http/viewmodels"
)

const (
	flashToastCookieName = "shopfront_toast"
	flashToastMaxAge     = 30
)

// setFlashToast stores a one-shot notification shown on the next rendered
// page, typically after a redirect.
func (h *Handlers) setFlashToast(c *echo.Context, toast viewmodels.ToastViewData) {
	toast = cleanToast(toast)
	if toast.Title == "" && toast.Description == "" {
		return
	}

	payload, err := json.Marshal(toast)
	if err != nil {
		return
	}
	c.SetCookie(h.toastCookie(base64.RawURLEncoding.EncodeToString(payload), flashToastMaxAge))
}

func (h *Handlers) popFlashToast(c *echo.Context) *viewmodels.ToastViewData {
	cookie, err := c.Cookie(flashToastCookieName)
	if err != nil || cookie == nil {
		return nil
	}

	expired := h.toastCookie("", -1)
	expired.Expires = time.Unix(0, 0)
	c.SetCookie(expired)

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var toast viewmodels.ToastViewData
	if err := json.Unmarshal(raw, &toast); err != nil {
		return nil
	}

	toast = cleanToast(toast)
	if toast.Title == "" && toast.Description == "" {
		return nil
	}
	return &toast
}

func (h *Handlers) toastCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     flashToastCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cfg.AuthCookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func cleanToast(toast viewmodels.ToastViewData) viewmodels.ToastViewData {
	toast.Category = normalizeToastCategory(toast.Category)
	toast.Title = strings.TrimSpace(toast.Title)
	toast.Description = strings.TrimSpace(toast.Description)
	return toast
}

func normalizeToastCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	switch category {
	case "success", "error", "warning", "info":
		return category
	default:
		return "info"
	}
}
