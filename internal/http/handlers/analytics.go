package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v5"
	"github.com/shopfront/shopfront/internal/analytics"
	"github.com/shopfront/shopfront/internal/http/viewmodels"
	"github.com/shopfront/shopfront/internal/http/views"
	"github.com/shopfront/shopfront/internal/progressive"
)

const (
	analyticsSummaryPath     = "/admin/analytics/summary"
	analyticsTopProductsPath = "/admin/analytics/top-products"
)

// HandleAnalytics serves the admin analytics page. It is only routed behind
// the admin gate, so nothing here runs for a denied request.
func (h *Handlers) HandleAnalytics(c *echo.Context) error {
	varyOnHX(c)
	since := analytics.WindowStart(h.now(), analytics.DefaultWindow)
	summary := h.summaryRegion(since)
	top := h.topProductsRegion(since)

	data := viewmodels.AnalyticsViewData{
		Layout:      h.LayoutData(c, "Analytics"),
		WindowLabel: windowLabel(since),
	}
	if isHX(c) {
		data.SummarySrc = analyticsSummaryPath
		data.TopProductsSrc = analyticsTopProductsPath
		return h.RenderComponent(c, views.AnalyticsPage(data, summary.Slot(), top.Slot()))
	}
	return h.stream(c, progressive.Document{
		Head: views.AnalyticsPageHead(data, summary.Slot(), top.Slot()),
		Tail: views.LayoutTail(),
	}, summary, top)
}

func (h *Handlers) HandleAnalyticsSummary(c *echo.Context) error {
	return h.renderFragment(c, h.summaryRegion(analytics.WindowStart(h.now(), analytics.DefaultWindow)))
}

func (h *Handlers) HandleAnalyticsTopProducts(c *echo.Context) error {
	return h.renderFragment(c, h.topProductsRegion(analytics.WindowStart(h.now(), analytics.DefaultWindow)))
}

func (h *Handlers) summaryRegion(since time.Time) *progressive.Region {
	load := func(ctx context.Context) (templ.Component, error) {
		if h.Analytics == nil {
			return nil, analytics.ErrNoStore
		}
		s, err := h.Analytics.Summary(ctx, since)
		if err != nil {
			return nil, err
		}
		return views.SummaryCards(viewmodels.SummaryCardsViewData{
			WindowLabel:  windowLabel(since),
			Orders:       views.FormatCount(s.Orders),
			Customers:    views.FormatCount(s.Customers),
			Revenue:      s.Revenue.String(),
			AverageOrder: s.AverageOrder().String(),
		}), nil
	}
	return progressive.MustRegion(views.SummaryRegionID, views.SummaryCardsPlaceholder(), load,
		progressive.WithTimeout(h.Cfg.RegionTimeout))
}

func (h *Handlers) topProductsRegion(since time.Time) *progressive.Region {
	load := func(ctx context.Context) (templ.Component, error) {
		if h.Analytics == nil {
			return nil, analytics.ErrNoStore
		}
		products, err := h.Analytics.TopProducts(ctx, since, analytics.DefaultTopLimit)
		if err != nil {
			return nil, err
		}
		rows := make([]viewmodels.TopProductRow, 0, len(products))
		for i, p := range products {
			rows = append(rows, viewmodels.TopProductRow{
				Rank:      i + 1,
				ProductID: p.ProductID,
				Name:      p.Name,
				UnitsSold: views.FormatCount(p.UnitsSold),
				Revenue:   p.Revenue.String(),
			})
		}
		return views.TopProductsTable(viewmodels.TopProductsViewData{
			WindowLabel: windowLabel(since),
			Rows:        rows,
		}), nil
	}
	return progressive.MustRegion(views.TopProductsRegionID, views.TopProductsPlaceholder(), load,
		progressive.WithTimeout(h.Cfg.RegionTimeout))
}

func windowLabel(since time.Time) string {
	return fmt.Sprintf("Since %s", since.UTC().Format("Jan 2, 2006"))
}
