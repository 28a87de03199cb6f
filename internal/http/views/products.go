package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/shopfront/shopfront/internal/http/viewmodels"
)

const (
	// PlaceholderCells is the fixed size of the loading grid. It does not
	// depend on how many products the catalog returns.
	PlaceholderCells = 12

	ProductGridRegionID = "product-grid"
)

// ProductGridPlaceholder renders the skeleton shown while products load.
func ProductGridPlaceholder() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.raw(`<ul class="product-grid product-grid-placeholder" aria-label="Loading products">`)
		for range PlaceholderCells {
			m.raw(`<li class="product-card product-card-placeholder" data-placeholder-cell>`)
			m.raw(`<div class="skeleton skeleton-image"></div>`)
			m.raw(`<div class="skeleton skeleton-line"></div>`)
			m.raw(`<div class="skeleton skeleton-line skeleton-line-short"></div>`)
			m.raw(`</li>`)
		}
		m.raw(`</ul>`)
		return m.done()
	})
}

func ProductGrid(data viewmodels.ProductGridViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		if len(data.Products) == 0 {
			m.raw(`<p class="empty-state">No products are available right now.</p>`)
			return m.done()
		}
		m.raw(`<ul class="product-grid">`)
		for _, p := range data.Products {
			m.raw(`<li class="product-card"`)
			m.attr("data-product-id", FormatInt64(p.ID))
			m.raw(`>`)
			if p.ImageURL != "" {
				m.raw(`<img loading="lazy"`)
				m.attr("src", p.ImageURL)
				m.attr("alt", p.Name)
				m.raw(`>`)
			}
			m.raw(`<h2 class="product-name">`)
			m.text(p.Name)
			m.raw(`</h2>`)
			if p.Description != "" {
				m.raw(`<p class="product-description">`)
				m.text(p.Description)
				m.raw(`</p>`)
			}
			m.raw(`<p class="product-price">`)
			m.text(p.Price)
			m.raw(`</p></li>`)
		}
		m.raw(`</ul>`)
		return m.done()
	})
}

// ProductsPageHead renders the listing page up to the grid slot. The page is
// finished by LayoutTail.
func ProductsPageHead(data viewmodels.ProductsViewData, grid templ.Component) templ.Component {
	return join(
		LayoutHead(data.Layout),
		templ.Raw(`<section class="catalog"><h1>Products</h1>`),
		Deferred(data.GridSrc, grid),
		templ.Raw(`</section>`),
	)
}

func ProductsPage(data viewmodels.ProductsViewData, grid templ.Component) templ.Component {
	return join(ProductsPageHead(data, grid), LayoutTail())
}
