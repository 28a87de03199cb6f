package viewmodels

type AnalyticsViewData struct {
	Layout      LayoutData
	WindowLabel string
	// SummarySrc and TopProductsSrc are set when regions load through htmx
	// instead of the streamed response.
	SummarySrc     string
	TopProductsSrc string
}

type SummaryCardsViewData struct {
	WindowLabel  string
	Orders       string
	Customers    string
	Revenue      string
	AverageOrder string
}

type TopProductRow struct {
	Rank      int
	ProductID int64
	Name      string
	UnitsSold string
	Revenue   string
}

type TopProductsViewData struct {
	WindowLabel string
	Rows        []TopProductRow
}
