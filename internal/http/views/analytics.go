package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/shopfront/shopfront/internal/http/viewmodels"
)

const (
	SummaryRegionID     = "analytics-summary"
	TopProductsRegionID = "analytics-top-products"

	topProductPlaceholderRows = 5
)

var summaryCardLabels = [...]string{"Revenue", "Orders", "Customers", "Average order"}

func SummaryCardsPlaceholder() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.raw(`<dl class="summary-cards summary-cards-placeholder">`)
		for _, label := range summaryCardLabels {
			m.raw(`<div class="summary-card"><dt>`)
			m.text(label)
			m.raw(`</dt><dd class="skeleton skeleton-figure"></dd></div>`)
		}
		m.raw(`</dl>`)
		return m.done()
	})
}

func SummaryCards(data viewmodels.SummaryCardsViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		values := [...]string{data.Revenue, data.Orders, data.Customers, data.AverageOrder}

		m := newMarkup(ctx, w)
		m.raw(`<dl class="summary-cards">`)
		for i, label := range summaryCardLabels {
			m.raw(`<div class="summary-card"><dt>`)
			m.text(label)
			m.raw(`</dt><dd>`)
			m.text(values[i])
			m.raw(`</dd></div>`)
		}
		m.raw(`</dl>`)
		if data.WindowLabel != "" {
			m.raw(`<p class="summary-window">`)
			m.text(data.WindowLabel)
			m.raw(`</p>`)
		}
		return m.done()
	})
}

func TopProductsPlaceholder() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.raw(`<table class="top-products top-products-placeholder">`)
		m.render(topProductsHeader())
		m.raw(`<tbody>`)
		for range topProductPlaceholderRows {
			m.raw(`<tr><td colspan="4"><div class="skeleton skeleton-line"></div></td></tr>`)
		}
		m.raw(`</tbody></table>`)
		return m.done()
	})
}

func TopProductsTable(data viewmodels.TopProductsViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		if len(data.Rows) == 0 {
			m.raw(`<p class="empty-state">No sales in this period.</p>`)
			return m.done()
		}
		m.raw(`<table class="top-products">`)
		m.render(topProductsHeader())
		m.raw(`<tbody>`)
		for _, row := range data.Rows {
			m.raw(`<tr`)
			m.attr("data-product-id", FormatInt64(row.ProductID))
			m.raw(`><td>`)
			m.text(FormatInt(row.Rank))
			m.raw(`</td><td>`)
			m.text(row.Name)
			m.raw(`</td><td>`)
			m.text(row.UnitsSold)
			m.raw(`</td><td>`)
			m.text(row.Revenue)
			m.raw(`</td></tr>`)
		}
		m.raw(`</tbody></table>`)
		return m.done()
	})
}

func topProductsHeader() templ.Component {
	return templ.Raw(`<thead><tr><th scope="col">#</th><th scope="col">Product</th>` +
		`<th scope="col">Units</th><th scope="col">Revenue</th></tr></thead>`)
}

// AnalyticsPageHead renders the analytics page up to both region slots.
func AnalyticsPageHead(data viewmodels.AnalyticsViewData, summary, topProducts templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.render(LayoutHead(data.Layout))
		m.raw(`<section class="analytics"><h1>Sales analytics</h1>`)
		if data.WindowLabel != "" {
			m.raw(`<p class="analytics-window">`)
			m.text(data.WindowLabel)
			m.raw(`</p>`)
		}
		m.raw(`<h2>Summary</h2>`)
		m.render(Deferred(data.SummarySrc, summary))
		m.raw(`<h2>Top products</h2>`)
		m.render(Deferred(data.TopProductsSrc, topProducts))
		m.raw(`</section>`)
		return m.done()
	})
}

func AnalyticsPage(data viewmodels.AnalyticsViewData, summary, topProducts templ.Component) templ.Component {
	return join(AnalyticsPageHead(data, summary, topProducts), LayoutTail())
}
