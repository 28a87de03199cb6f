package progressive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/a-h/templ"
)

func staticLoader(html string) Loader {
	return func(context.Context) (templ.Component, error) {
		return templ.Raw(html), nil
	}
}

type stateLog struct {
	mu     sync.Mutex
	states []State
}

func (l *stateLog) add(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states = append(l.states, s)
}

func (l *stateLog) snapshot() []State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]State(nil), l.states...)
}

func TestNewRegionRejectsInvalidIDs(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "Grid", "1grid", "grid<script>", "grid\"", "a b"} {
		if _, err := NewRegion(id, nil, staticLoader("x")); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("NewRegion(%q) error = %v, want %v", id, err, ErrInvalidID)
		}
	}
	if _, err := NewRegion("grid", nil, nil); err == nil {
		t.Fatal("NewRegion() without loader error = nil")
	}
}

func TestRegionObservesPendingThenResolved(t *testing.T) {
	t.Parallel()

	r := MustRegion("grid", templ.Raw("loading"), staticLoader("<ul>items</ul>"))
	var log stateLog
	r.Observe(log.add)

	html, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if string(html) != "<ul>items</ul>" {
		t.Fatalf("html = %q, want %q", html, "<ul>items</ul>")
	}

	got := log.snapshot()
	if len(got) != 2 || got[0] != StatePending || got[1] != StateResolved {
		t.Fatalf("observed states = %v, want [pending resolved]", got)
	}
	if r.State() != StateResolved {
		t.Fatalf("State() = %s, want resolved", r.State())
	}
}

func TestRegionTransitionFiresOnce(t *testing.T) {
	t.Parallel()

	var loads atomic.Int32
	r := MustRegion("grid", nil, func(context.Context) (templ.Component, error) {
		loads.Add(1)
		return templ.Raw("content"), nil
	})
	var log stateLog
	r.Observe(log.add)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Resolve(context.Background()); err != nil {
				t.Errorf("Resolve() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("loader calls = %d, want 1", got)
	}
	if got := log.snapshot(); len(got) != 2 {
		t.Fatalf("observed states = %v, want exactly [pending resolved]", got)
	}
}

func TestRegionObserveRacingResolveKeepsOrder(t *testing.T) {
	t.Parallel()

	for range 20 {
		r := MustRegion("grid", nil, staticLoader("content"))
		var log stateLog
		delivering := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			r.Observe(func(s State) {
				if s == StatePending {
					close(delivering)
					// Resolve runs while Pending is still being delivered.
					time.Sleep(5 * time.Millisecond)
				}
				log.add(s)
			})
		}()
		<-delivering

		if _, err := r.Resolve(context.Background()); err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		<-done

		got := log.snapshot()
		if len(got) != 2 || got[0] != StatePending || got[1] != StateResolved {
			t.Fatalf("observed states = %v, want [pending resolved]", got)
		}
	}
}

func TestRegionObserveAfterResolveSeesOnlyResolved(t *testing.T) {
	t.Parallel()

	r := MustRegion("grid", nil, staticLoader("content"))
	if _, err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	var log stateLog
	r.Observe(log.add)
	if got := log.snapshot(); len(got) != 1 || got[0] != StateResolved {
		t.Fatalf("observed states = %v, want [resolved]", got)
	}
}

func TestRegionCanceledBeforeLoadNeverTransitions(t *testing.T) {
	t.Parallel()

	var loads atomic.Int32
	r := MustRegion("grid", nil, func(context.Context) (templ.Component, error) {
		loads.Add(1)
		return templ.Raw("content"), nil
	})
	var log stateLog
	r.Observe(log.add)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Resolve(ctx); !errors.Is(err, ErrCanceled) {
		t.Fatalf("Resolve() error = %v, want %v", err, ErrCanceled)
	}
	if loads.Load() != 0 {
		t.Fatalf("loader ran for a canceled page")
	}
	if r.State() != StatePending {
		t.Fatalf("State() = %s, want pending", r.State())
	}
	if got := log.snapshot(); len(got) != 1 || got[0] != StatePending {
		t.Fatalf("observed states = %v, want [pending]", got)
	}
}

func TestRegionCanceledDuringLoadNeverTransitions(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	r := MustRegion("grid", nil, func(ctx context.Context) (templ.Component, error) {
		close(started)
		<-ctx.Done()
		return templ.Raw("stale content"), nil
	})
	var log stateLog
	r.Observe(log.add)

	errCh := make(chan error, 1)
	go func() {
		_, err := r.Resolve(ctx)
		errCh <- err
	}()
	<-started
	cancel()

	if err := <-errCh; !errors.Is(err, ErrCanceled) {
		t.Fatalf("Resolve() error = %v, want %v", err, ErrCanceled)
	}
	if r.State() != StatePending {
		t.Fatalf("State() = %s, want pending", r.State())
	}
	if got := log.snapshot(); len(got) != 1 {
		t.Fatalf("observed states = %v, want [pending]", got)
	}
}

func TestRegionLoaderFailureResolvesToFallback(t *testing.T) {
	t.Parallel()

	boom := errors.New("catalog unavailable")
	r := MustRegion("grid", nil, func(context.Context) (templ.Component, error) {
		return nil, boom
	}, WithFallback(func(err error) templ.Component {
		return templ.Raw("<p>fallback: " + err.Error() + "</p>")
	}))

	html, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if !strings.Contains(string(html), "fallback: catalog unavailable") {
		t.Fatalf("html = %q, want fallback markup", html)
	}
	if !errors.Is(r.Err(), boom) {
		t.Fatalf("Err() = %v, want %v", r.Err(), boom)
	}
	if r.State() != StateResolved {
		t.Fatalf("State() = %s, want resolved", r.State())
	}
}

func TestRegionTimeoutResolvesToFallback(t *testing.T) {
	t.Parallel()

	r := MustRegion("grid", nil, func(ctx context.Context) (templ.Component, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, WithTimeout(10*time.Millisecond))

	html, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if !strings.Contains(string(html), "could not be loaded") {
		t.Fatalf("html = %q, want default fallback", html)
	}
	if !errors.Is(r.Err(), context.DeadlineExceeded) {
		t.Fatalf("Err() = %v, want %v", r.Err(), context.DeadlineExceeded)
	}
}

func TestRegionRenderFailureDoesNotLeakPartialMarkup(t *testing.T) {
	t.Parallel()

	partial := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<ul><li>half")
		return errors.New("render failed")
	})
	r := MustRegion("grid", nil, func(context.Context) (templ.Component, error) {
		return partial, nil
	})

	html, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if strings.Contains(string(html), "half") {
		t.Fatalf("html = %q, leaked partial render", html)
	}
}

func TestRegionSlotRendersPlaceholderThenContent(t *testing.T) {
	t.Parallel()

	r := MustRegion("grid", templ.Raw(`<span class="skeleton"></span>`), staticLoader("<ul>ready</ul>"))

	var buf bytes.Buffer
	if err := r.Slot().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Slot().Render() error = %v", err)
	}
	pending := buf.String()
	if !strings.Contains(pending, `id="grid"`) || !strings.Contains(pending, `data-region-state="pending"`) {
		t.Fatalf("pending slot = %q", pending)
	}
	if !strings.Contains(pending, "skeleton") || strings.Contains(pending, "ready") {
		t.Fatalf("pending slot = %q, want placeholder only", pending)
	}

	buf.Reset()
	if err := r.Content().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Content().Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), `data-region-state="resolved"`) || !strings.Contains(buf.String(), "ready") {
		t.Fatalf("content = %q", buf.String())
	}

	buf.Reset()
	if err := r.Slot().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Slot().Render() error = %v", err)
	}
	if strings.Contains(buf.String(), "skeleton") {
		t.Fatalf("resolved slot still shows placeholder: %q", buf.String())
	}
}
