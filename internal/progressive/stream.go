package progressive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"
)

// swapFunc is defined by Bootstrap and called once per resolved region.
const swapFunc = "shopfrontSwap"

// Document is a streamed page split around the point where resolved regions
// are appended. Head must contain every region's Slot.
type Document struct {
	Head templ.Component
	Tail templ.Component
}

// Bootstrap renders the inline script that moves resolved content from its
// template into the region's mount point. Include it once in the page head.
func Bootstrap() templ.Component {
	return templ.Raw(`<script>function ` + swapFunc + `(id){` +
		`var t=document.getElementById(id+"-resolved"),m=document.getElementById(id);` +
		`if(!t||!m){return}` +
		`m.replaceChildren(t.content.cloneNode(true));` +
		`m.setAttribute("data-region-state","resolved");m.setAttribute("aria-busy","false");t.remove()}` +
		`</script>`)
}

// Stream writes doc.Head and flushes it, so every placeholder reaches the
// client before any region starts loading. Regions then resolve concurrently;
// each one is appended as soon as it is ready, in completion order. When ctx
// ends, regions still pending are never written and Stream returns the
// cancellation error.
func Stream(ctx context.Context, w http.ResponseWriter, doc Document, regions ...*Region) error {
	if doc.Head == nil {
		return errors.New("progressive: document has no head")
	}
	rc := http.NewResponseController(w)

	if err := doc.Head.Render(ctx, w); err != nil {
		return err
	}
	flush(rc)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range regions {
		if r == nil {
			continue
		}
		g.Go(func() error {
			html, err := r.Resolve(gctx)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if err := writeSwap(w, r.id, html); err != nil {
				return err
			}
			flush(rc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if doc.Tail != nil {
		if err := doc.Tail.Render(ctx, w); err != nil {
			return err
		}
	}
	flush(rc)
	return nil
}

func writeSwap(w io.Writer, id string, html []byte) error {
	if _, err := fmt.Fprintf(w, `<template id="%s-resolved">`, id); err != nil {
		return err
	}
	if _, err := w.Write(html); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, `</template><script>%s(%q)</script>`, swapFunc, id)
	return err
}

func flush(rc *http.ResponseController) {
	// ErrNotSupported: the writer buffers and sends everything on return.
	_ = rc.Flush()
}
