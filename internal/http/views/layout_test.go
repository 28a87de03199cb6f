package views

import (
	"testing"

	"github.com/shopfront/shopfront/internal/http/viewmodels"
)

func TestLayoutEnablesGlobalHTMXBoost(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, Layout(viewmodels.LayoutData{
		Title:     "Products",
		CSRFToken: "csrf-token-123",
	}, nil))

	assertContains(t, html, `hx-boost="true"`)
	assertContains(t, html, `X-CSRF-Token`)
	assertContains(t, html, `csrf-token-123`)
	assertContains(t, html, `shopfrontSwap`)
	assertContains(t, html, `</main></body></html>`)
}

func TestLayoutLogoutFormOptsOutOfHTMXBoost(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, Layout(viewmodels.LayoutData{
		Title:     "Products",
		CSRFToken: "csrf-token-123",
		UserEmail: "shopper@example.com",
	}, nil))

	assertContains(t, html, `form method="post" action="/logout" hx-boost="false"`)
	assertNotContains(t, html, `>Sign in</a>`)
}

func TestLayoutShowsAnalyticsLinkOnlyForAdmins(t *testing.T) {
	t.Parallel()

	user := renderViewComponent(t, Layout(viewmodels.LayoutData{UserEmail: "u@example.com"}, nil))
	assertNotContains(t, user, `href="/admin/analytics"`)

	admin := renderViewComponent(t, Layout(viewmodels.LayoutData{UserEmail: "a@example.com", IsAdmin: true}, nil))
	assertContains(t, admin, `href="/admin/analytics"`)
}

func TestLayoutMarksActiveNavItem(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, Layout(viewmodels.LayoutData{ActivePath: "/products"}, nil))
	assertContains(t, html, `href="/products" aria-current="page"`)
}

func TestLayoutEscapesUserContent(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, Layout(viewmodels.LayoutData{
		Title:     `<script>alert(1)</script>`,
		UserEmail: `"><img src=x>`,
		Toast:     &viewmodels.ToastViewData{Category: "error", Title: "<b>bad</b>"},
	}, nil))

	assertNotContains(t, html, `<script>alert(1)</script>`)
	assertNotContains(t, html, `"><img src=x>`)
	assertNotContains(t, html, `<b>bad</b>`)
	assertContains(t, html, `class="toast toast-error"`)
}
