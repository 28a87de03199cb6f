package progressive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/shopfront/shopfront/internal/metrics"
)

// State is the render state of one region.
type State uint8

const (
	StatePending State = iota
	StateResolved
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

var (
	// ErrCanceled is returned by Resolve when the page context ended before
	// the region resolved. The region stays Pending.
	ErrCanceled = errors.New("progressive: region canceled")

	ErrInvalidID = errors.New("progressive: invalid region id")
)

var regionIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{0,62}$`)

// Loader fetches a region's data and returns the component that renders it.
type Loader func(ctx context.Context) (templ.Component, error)

// Region is one independently resolving part of a page.
type Region struct {
	id          string
	placeholder templ.Component
	load        Loader
	fallback    func(error) templ.Component
	timeout     time.Duration

	// resolveMu keeps one transition in flight per region.
	resolveMu sync.Mutex
	// notifyMu orders observer calls so Pending always precedes Resolved.
	notifyMu sync.Mutex

	mu        sync.Mutex
	state     State
	html      []byte
	loadErr   error
	observers []func(State)
}

type Option func(*Region)

// WithTimeout bounds the loader. A loader that runs out of time resolves the
// region to its fallback; it does not cancel the page.
func WithTimeout(d time.Duration) Option {
	return func(r *Region) {
		r.timeout = d
	}
}

// WithFallback sets the view rendered when the loader fails.
func WithFallback(fn func(error) templ.Component) Option {
	return func(r *Region) {
		r.fallback = fn
	}
}

// NewRegion builds a pending region. id must be a lowercase DOM id
// (letters, digits, dashes).
func NewRegion(id string, placeholder templ.Component, load Loader, opts ...Option) (*Region, error) {
	if !regionIDPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if load == nil {
		return nil, fmt.Errorf("progressive: region %q has no loader", id)
	}
	if placeholder == nil {
		placeholder = templ.NopComponent
	}
	r := &Region{
		id:          id,
		placeholder: placeholder,
		load:        load,
		fallback:    defaultFallback,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// MustRegion is NewRegion for ids known at compile time.
func MustRegion(id string, placeholder templ.Component, load Loader, opts ...Option) *Region {
	r, err := NewRegion(id, placeholder, load, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Region) ID() string {
	return r.id
}

func (r *Region) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Err is the loader error that led to the fallback view, if any.
func (r *Region) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadErr
}

// Observe registers fn and calls it with the current state. fn is called
// again, once, when the region resolves. fn must not call Observe.
func (r *Region) Observe(fn func(State)) {
	if fn == nil {
		return
	}
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	current := r.state
	if current == StatePending {
		r.observers = append(r.observers, fn)
	}
	r.mu.Unlock()
	fn(current)
}

// Resolve runs the loader and moves the region to Resolved, returning the
// rendered content. A resolved region returns its cached content without
// loading again. If ctx ends first, Resolve returns ErrCanceled and the
// region stays Pending.
func (r *Region) Resolve(ctx context.Context) ([]byte, error) {
	r.resolveMu.Lock()
	defer r.resolveMu.Unlock()

	if html, ok := r.resolved(); ok {
		return html, nil
	}
	if err := ctx.Err(); err != nil {
		r.record("canceled")
		return nil, fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	start := time.Now()
	html, loadErr := r.render(ctx)
	if err := ctx.Err(); err != nil {
		r.record("canceled")
		return nil, fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	metrics.RegionResolveDuration.WithLabelValues(r.id).Observe(time.Since(start).Seconds())

	r.mu.Lock()
	r.state = StateResolved
	r.html = html
	r.loadErr = loadErr
	observers := r.observers
	r.observers = nil
	r.mu.Unlock()

	if loadErr != nil {
		r.record("fallback")
	} else {
		r.record("resolved")
	}
	r.notifyMu.Lock()
	for _, fn := range observers {
		fn(StateResolved)
	}
	r.notifyMu.Unlock()
	return html, nil
}

func (r *Region) resolved() ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.html, r.state == StateResolved
}

// render loads and renders the content into memory so nothing partial is
// ever written. Loader and render failures produce the fallback markup.
func (r *Region) render(ctx context.Context) ([]byte, error) {
	loadCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	component, err := r.load(loadCtx)
	if err == nil && component == nil {
		err = errors.New("progressive: loader returned no component")
	}
	if err == nil {
		var buf bytes.Buffer
		if err = component.Render(ctx, &buf); err == nil {
			return buf.Bytes(), nil
		}
	}

	var buf bytes.Buffer
	if ferr := r.fallback(err).Render(ctx, &buf); ferr != nil {
		buf.Reset()
		_ = defaultFallback(err).Render(ctx, &buf)
	}
	return buf.Bytes(), err
}

func (r *Region) record(outcome string) {
	metrics.RegionOutcomesTotal.WithLabelValues(r.id, outcome).Inc()
}

// Slot renders the region's mount point: the placeholder while pending, the
// content once resolved.
func (r *Region) Slot() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if html, ok := r.resolved(); ok {
			return writeMount(ctx, w, r.id, StateResolved, templ.Raw(string(html)))
		}
		return writeMount(ctx, w, r.id, StatePending, r.placeholder)
	})
}

// Content resolves the region and renders only its content. It is meant for
// fragment endpoints that replace a slot in a single request.
func (r *Region) Content() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, err := r.Resolve(ctx)
		if err != nil {
			return err
		}
		return writeMount(ctx, w, r.id, StateResolved, templ.Raw(string(html)))
	})
}

func writeMount(ctx context.Context, w io.Writer, id string, state State, inner templ.Component) error {
	busy := "false"
	if state == StatePending {
		busy = "true"
	}
	if _, err := fmt.Fprintf(w, `<div id="%s" data-region-state="%s" aria-busy="%s">`, id, state, busy); err != nil {
		return err
	}
	if err := inner.Render(ctx, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, `</div>`)
	return err
}

func defaultFallback(error) templ.Component {
	return templ.Raw(`<p class="region-error" role="alert">This section could not be loaded.</p>`)
}
