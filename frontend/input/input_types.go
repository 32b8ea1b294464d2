package input

import (
	"keepstock/frontend/shared/html"
	"keepstock/models"
)

type Request struct {
	SKU      string
	Category string
	Quantity int64
	Branch   string
	Username string
}

// Result tells the clerk where the units went.
type Result struct {
	Box     models.Box
	Created bool
	Log     models.ActivityLog
}

type ProductRow struct {
	Product  models.Product
	Holders  []string
	Selected bool
}

type PageData struct {
	html.Frame
	Query      string
	Branch     string
	Branches   []string
	Categories []string
	NextNumber map[string]string
	Products   []ProductRow
}
