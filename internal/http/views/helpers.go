package views

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func FormatInt(v int) string {
	return strconv.Itoa(v)
}

func FormatInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// LoginURL returns the login page address, carrying next when it is set.
func LoginURL(next string) string {
	if next = strings.TrimSpace(next); next == "" {
		return "/login"
	}
	values := url.Values{}
	values.Set("next", next)
	return "/login?" + values.Encode()
}

func ToastClass(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "success":
		return "toast toast-success"
	case "error":
		return "toast toast-error"
	case "warning":
		return "toast toast-warning"
	default:
		return "toast toast-info"
	}
}

// markup writes HTML and keeps the first write error, so components can be
// written top to bottom and checked once.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newMarkup(ctx context.Context, w io.Writer) *markup {
	return &markup{ctx: ctx, w: w}
}

func (m *markup) raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (m *markup) attr(name, value string) {
	m.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (m *markup) render(c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(m.ctx, m.w)
}

func (m *markup) done() error {
	return m.err
}

// join renders components in order.
func join(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		for _, c := range components {
			m.render(c)
		}
		return m.done()
	})
}

// Deferred wraps slot so htmx replaces it with the fragment at src once the
// page has loaded. An empty src renders slot unchanged.
func Deferred(src string, slot templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		if src == "" {
			m.render(slot)
			return m.done()
		}
		m.raw(`<div`)
		m.attr("hx-get", src)
		m.raw(` hx-trigger="load" hx-swap="outerHTML">`)
		m.render(slot)
		m.raw(`</div>`)
		return m.done()
	})
}

var countPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCount groups digits for display, e.g. 12345 -> "12,345".
func FormatCount(v int64) string {
	return countPrinter.Sprintf("%d", v)
}
