package boxes

import "keepstock/frontend/shared/html"

type BoxRow struct {
	ID            string
	Number        string
	Category      string
	Branch        string
	SKUCount      int
	TotalQuantity int64
	Status        string
}

type PageData struct {
	html.Frame
	Query      string
	Category   string
	Branch     string
	Branches   []string
	Categories []string
	Rows       []BoxRow
}
