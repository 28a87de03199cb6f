package viewmodels

type ProductCard struct {
	ID          int64
	SKU         string
	Name        string
	Description string
	Price       string
	ImageURL    string
}

type ProductsViewData struct {
	Layout LayoutData
	// GridSrc is the fragment endpoint that fills the grid when the page is
	// not streamed.
	GridSrc string
}

type ProductGridViewData struct {
	Products []ProductCard
}
