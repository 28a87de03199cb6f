package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/shopfront/shopfront/internal/http/viewmodels"
)

func LoginPage(data viewmodels.LoginViewData) templ.Component {
	layout := viewmodels.LayoutData{
		Title:      "Sign in",
		CSRFToken:  data.CSRFToken,
		Toast:      data.Toast,
		ActivePath: "/login",
	}
	return Layout(layout, loginForm(data))
}

func loginForm(data viewmodels.LoginViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.raw(`<section class="login"><h1>Sign in</h1>`)
		if data.SetupRequired {
			m.raw(`<p class="notice">No accounts exist yet. Run <code>shopfront users bootstrap-admin</code> to create the first administrator.</p>`)
			m.raw(`</section>`)
			return m.done()
		}
		if data.ErrorMessage != "" {
			m.raw(`<p class="form-error" role="alert">`)
			m.text(data.ErrorMessage)
			m.raw(`</p>`)
		}
		m.raw(`<form method="post" action="/login" hx-boost="false">`)
		m.raw(`<input type="hidden" name="csrf"`)
		m.attr("value", data.CSRFToken)
		m.raw(`>`)
		if data.Next != "" {
			m.raw(`<input type="hidden" name="next"`)
			m.attr("value", data.Next)
			m.raw(`>`)
		}
		m.raw(`<label for="email">Email</label>`)
		m.raw(`<input id="email" name="email" type="email" autocomplete="username" required`)
		m.attr("value", data.Email)
		m.raw(`>`)
		m.raw(`<label for="password">Password</label>`)
		m.raw(`<input id="password" name="password" type="password" autocomplete="current-password" required>`)
		m.raw(`<button type="submit">Sign in</button></form></section>`)
		return m.done()
	})
}
