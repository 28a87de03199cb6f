package progressive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/a-h/templ"
)

// flushWriter records what the client had received at every flush.
type flushWriter struct {
	mu      sync.Mutex
	header  http.Header
	buf     bytes.Buffer
	flushes []string
	flushed chan struct{}
}

func newFlushWriter() *flushWriter {
	return &flushWriter{header: make(http.Header), flushed: make(chan struct{}, 16)}
}

func (w *flushWriter) Header() http.Header { return w.header }

func (w *flushWriter) WriteHeader(int) {}

func (w *flushWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *flushWriter) Flush() {
	w.mu.Lock()
	w.flushes = append(w.flushes, w.buf.String())
	w.mu.Unlock()
	select {
	case w.flushed <- struct{}{}:
	default:
	}
}

func (w *flushWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func (w *flushWriter) flushSnapshots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.flushes...)
}

func testDocument(regions ...*Region) Document {
	head := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<html><body>"); err != nil {
			return err
		}
		for _, r := range regions {
			if err := r.Slot().Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
	return Document{Head: head, Tail: templ.Raw("</body></html>")}
}

func TestStreamFlushesPlaceholderBeforeContentLoads(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	r := MustRegion("product-grid", templ.Raw("PLACEHOLDER"), func(context.Context) (templ.Component, error) {
		<-release
		return templ.Raw("CONTENT"), nil
	})

	w := newFlushWriter()
	errCh := make(chan error, 1)
	go func() {
		errCh <- Stream(context.Background(), w, testDocument(r), r)
	}()

	<-w.flushed
	first := w.String()
	if !strings.Contains(first, "PLACEHOLDER") {
		t.Fatalf("first flush = %q, want placeholder", first)
	}
	if strings.Contains(first, "CONTENT") {
		t.Fatalf("first flush = %q, content arrived before its data", first)
	}

	close(release)
	if err := <-errCh; err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	body := w.String()
	if strings.Index(body, "PLACEHOLDER") > strings.Index(body, "CONTENT") {
		t.Fatalf("body = %q, want placeholder before content", body)
	}
	if !strings.Contains(body, `<template id="product-grid-resolved">CONTENT</template>`) {
		t.Fatalf("body = %q, want resolved template", body)
	}
	if !strings.Contains(body, `shopfrontSwap("product-grid")`) {
		t.Fatalf("body = %q, want swap call", body)
	}
	if !strings.HasSuffix(body, "</body></html>") {
		t.Fatalf("body = %q, want document tail last", body)
	}
}

func TestStreamRegionsResolveIndependently(t *testing.T) {
	t.Parallel()

	releaseSlow := make(chan struct{})
	slow := MustRegion("slow", nil, func(context.Context) (templ.Component, error) {
		<-releaseSlow
		return templ.Raw("SLOW"), nil
	})
	fast := MustRegion("fast", nil, staticLoader("FAST"))

	w := newFlushWriter()
	errCh := make(chan error, 1)
	go func() {
		errCh <- Stream(context.Background(), w, testDocument(slow, fast), slow, fast)
	}()

	// head flush, then the fast region's flush while slow is still loading.
	<-w.flushed
	<-w.flushed
	if got := w.String(); !strings.Contains(got, "FAST") || strings.Contains(got, "SLOW") {
		t.Fatalf("body after fast region = %q", got)
	}

	close(releaseSlow)
	if err := <-errCh; err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	body := w.String()
	if strings.Index(body, "FAST") > strings.Index(body, "SLOW") {
		t.Fatalf("body = %q, want fast region written first", body)
	}
}

func TestStreamCanceledPageWritesNoStaleContent(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	r := MustRegion("product-grid", templ.Raw("PLACEHOLDER"), func(ctx context.Context) (templ.Component, error) {
		close(started)
		<-ctx.Done()
		return templ.Raw("STALE"), nil
	})

	w := newFlushWriter()
	errCh := make(chan error, 1)
	go func() {
		errCh <- Stream(ctx, w, testDocument(r), r)
	}()

	<-started
	cancel()

	if err := <-errCh; !errors.Is(err, ErrCanceled) {
		t.Fatalf("Stream() error = %v, want %v", err, ErrCanceled)
	}
	body := w.String()
	if strings.Contains(body, "STALE") || strings.Contains(body, "-resolved") {
		t.Fatalf("body = %q, canceled region was written", body)
	}
	if r.State() != StatePending {
		t.Fatalf("State() = %s, want pending", r.State())
	}
}

func TestStreamEveryFlushIsPlaceholderOrComplete(t *testing.T) {
	t.Parallel()

	r := MustRegion("grid", templ.Raw("PLACEHOLDER"), staticLoader("<ul><li>a</li><li>b</li></ul>"))
	w := newFlushWriter()
	if err := Stream(context.Background(), w, testDocument(r), r); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	for i, snap := range w.flushSnapshots() {
		hasOpen := strings.Contains(snap, `<template id="grid-resolved">`)
		hasComplete := strings.Contains(snap, `<ul><li>a</li><li>b</li></ul></template>`)
		if hasOpen != hasComplete {
			t.Fatalf("flush %d = %q, contains partial region content", i, snap)
		}
	}
}

func TestStreamRequiresHead(t *testing.T) {
	t.Parallel()

	if err := Stream(context.Background(), newFlushWriter(), Document{}); err == nil {
		t.Fatal("Stream() error = nil, want missing head error")
	}
}

func TestBootstrapDefinesSwapFunction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Bootstrap().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "function shopfrontSwap(id)") {
		t.Fatalf("bootstrap = %q", buf.String())
	}
}
