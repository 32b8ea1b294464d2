package refill

import (
	"keepstock/frontend/shared/html"
	"keepstock/models"
)

type Request struct {
	BoxID    string
	SKU      string
	Quantity int64
	Username string
}

type Result struct {
	Remaining int64
	Log       models.ActivityLog
}

type PageData struct {
	html.Frame
	Query    string
	Branch   string
	Branches []string
	Boxes    []models.Box
}
