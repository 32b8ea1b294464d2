package dashboard

import (
	"keepstock/frontend/shared/html"
	"keepstock/models"
)

type CategoryStat struct {
	Category string
	Boxes    int
	SKUs     int
}

type Stats struct {
	TotalSKUs    int
	TotalBoxes   int
	ActiveBoxes  int
	RefillsToday int
	LogCount     int
	Categories   []CategoryStat
	Recent       []models.ActivityLog
}

type PageData struct {
	html.Frame
	Branch   string
	Branches []string
	Stats    Stats
}
