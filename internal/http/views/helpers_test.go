package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

func renderViewComponent(t *testing.T, component templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render component: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, content, want string) {
	t.Helper()
	if !strings.Contains(content, want) {
		t.Fatalf("expected rendered HTML to contain %q", want)
	}
}

func assertNotContains(t *testing.T, content, disallowed string) {
	t.Helper()
	if strings.Contains(content, disallowed) {
		t.Fatalf("expected rendered HTML to not contain %q", disallowed)
	}
}

// countElementsWithAttr parses content and counts elements carrying attr.
func countElementsWithAttr(t *testing.T, content, attr string) int {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == attr {
					count++
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return count
}

func TestLoginURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		next string
		want string
	}{
		{next: "", want: "/login"},
		{next: "  ", want: "/login"},
		{next: "/admin/analytics", want: "/login?next=%2Fadmin%2Fanalytics"},
	}
	for _, tt := range tests {
		if got := LoginURL(tt.next); got != tt.want {
			t.Fatalf("LoginURL(%q) = %q, want %q", tt.next, got, tt.want)
		}
	}
}

func TestDeferredWithoutSourceRendersSlotOnly(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, Deferred("", templ.Raw(`<p>slot</p>`)))
	if html != `<p>slot</p>` {
		t.Fatalf("Deferred = %q, want bare slot", html)
	}

	html = renderViewComponent(t, Deferred("/products/grid", templ.Raw(`<p>slot</p>`)))
	assertContains(t, html, `hx-get="/products/grid"`)
	assertContains(t, html, `hx-trigger="load"`)
	assertContains(t, html, `hx-swap="outerHTML"`)
	assertContains(t, html, `<p>slot</p>`)
}

func TestFormatCount(t *testing.T) {
	t.Parallel()

	tests := map[int64]string{0: "0", 999: "999", 1204: "1,204", 1234567: "1,234,567"}
	for in, want := range tests {
		if got := FormatCount(in); got != want {
			t.Fatalf("FormatCount(%d) = %q, want %q", in, got, want)
		}
	}
}
