package views

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/shopfront/shopfront/internal/http/viewmodels"
	"github.com/shopfront/shopfront/internal/progressive"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

type navItem struct {
	Href  string
	Label string
	Admin bool
}

var navItems = []navItem{
	{Href: "/products", Label: "Products"},
	{Href: "/admin/analytics", Label: "Analytics", Admin: true},
}

// Layout renders a complete page around body.
func Layout(data viewmodels.LayoutData, body templ.Component) templ.Component {
	return join(LayoutHead(data), body, LayoutTail())
}

// LayoutHead renders everything up to and including the opening <main>.
// Streamed pages write it first and append resolved regions after it.
func LayoutHead(data viewmodels.LayoutData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		m.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.raw(`<title>`)
		m.text(pageTitle(data.Title))
		m.raw(`</title>`)
		m.raw(`<script src="` + htmxSrc + `" defer></script>`)
		m.render(progressive.Bootstrap())
		m.raw(`</head><body hx-boost="true"`)
		m.attr("hx-headers", csrfHeaders(data.CSRFToken))
		m.raw(`>`)
		m.render(nav(data))
		m.render(toast(data.Toast))
		m.raw(`<main id="main">`)
		return m.done()
	})
}

func LayoutTail() templ.Component {
	return templ.Raw(`</main></body></html>`)
}

func pageTitle(title string) string {
	if title = strings.TrimSpace(title); title == "" {
		return "Shopfront"
	}
	return title + " · Shopfront"
}

func csrfHeaders(token string) string {
	raw, err := json.Marshal(map[string]string{"X-CSRF-Token": token})
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func nav(data viewmodels.LayoutData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.raw(`<header class="site-header"><a class="brand" href="/">Shopfront</a><nav><ul>`)
		for _, item := range navItems {
			if item.Admin && !data.IsAdmin {
				continue
			}
			m.raw(`<li><a`)
			m.attr("href", item.Href)
			if isActive(data.ActivePath, item.Href) {
				m.raw(` aria-current="page"`)
			}
			m.raw(`>`)
			m.text(item.Label)
			m.raw(`</a></li>`)
		}
		m.raw(`</ul></nav><div class="account">`)
		if data.SignedIn() {
			m.raw(`<span class="account-email">`)
			m.text(data.UserEmail)
			m.raw(`</span>`)
			m.raw(`<form method="post" action="/logout" hx-boost="false">`)
			m.raw(`<input type="hidden" name="csrf"`)
			m.attr("value", data.CSRFToken)
			m.raw(`><button type="submit">Sign out</button></form>`)
		} else {
			m.raw(`<a`)
			m.attr("href", LoginURL(data.ActivePath))
			m.raw(`>Sign in</a>`)
		}
		m.raw(`</div></header>`)
		return m.done()
	})
}

func isActive(activePath, href string) bool {
	if activePath == href {
		return true
	}
	return strings.HasPrefix(activePath, href+"/")
}

func toast(t *viewmodels.ToastViewData) templ.Component {
	if t == nil {
		return templ.NopComponent
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.raw(`<div`)
		m.attr("class", ToastClass(t.Category))
		m.raw(` role="status">`)
		if t.Title != "" {
			m.raw(`<strong>`)
			m.text(t.Title)
			m.raw(`</strong>`)
		}
		if t.Description != "" {
			m.raw(`<p>`)
			m.text(t.Description)
			m.raw(`</p>`)
		}
		m.raw(`</div>`)
		return m.done()
	})
}
