package handlers

import (
	"context"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v5"
	"github.com/shopfront/shopfront/internal/catalog"
	"github.com/shopfront/shopfront/internal/http/viewmodels"
	"github.com/shopfront/shopfront/internal/http/views"
	"github.com/shopfront/shopfront/internal/progressive"
)

const productGridPath = "/products/grid"

// HandleProducts serves the listing page. Browsers get the placeholder grid
// immediately and the product grid streamed after it; htmx navigations get
// the placeholder with a deferred request for the grid fragment.
func (h *Handlers) HandleProducts(c *echo.Context) error {
	varyOnHX(c)
	grid := h.productGridRegion()
	data := viewmodels.ProductsViewData{Layout: h.LayoutData(c, "Products")}

	if isHX(c) {
		data.GridSrc = productGridPath
		return h.RenderComponent(c, views.ProductsPage(data, grid.Slot()))
	}
	return h.stream(c, progressive.Document{
		Head: views.ProductsPageHead(data, grid.Slot()),
		Tail: views.LayoutTail(),
	}, grid)
}

func (h *Handlers) HandleProductsGrid(c *echo.Context) error {
	return h.renderFragment(c, h.productGridRegion())
}

func (h *Handlers) productGridRegion() *progressive.Region {
	return progressive.MustRegion(
		views.ProductGridRegionID,
		views.ProductGridPlaceholder(),
		h.loadProductGrid,
		progressive.WithTimeout(h.Cfg.RegionTimeout),
	)
}

func (h *Handlers) loadProductGrid(ctx context.Context) (templ.Component, error) {
	if h.Catalog == nil {
		return nil, catalog.ErrNoStore
	}
	products, err := h.Catalog.ListProducts(ctx, h.Cfg.CatalogPageSize)
	if err != nil {
		return nil, err
	}

	cards := make([]viewmodels.ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, viewmodels.ProductCard{
			ID:          p.ID,
			SKU:         p.SKU,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.String(),
			ImageURL:    p.ImageURL,
		})
	}
	return views.ProductGrid(viewmodels.ProductGridViewData{Products: cards}), nil
}
