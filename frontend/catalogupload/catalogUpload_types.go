package catalogupload

import (
	"keepstock/frontend/shared/html"
	"keepstock/infrastructure/catalog"
	"keepstock/models"
)

type PageData struct {
	html.Frame
	Branch   string
	Branches []string
	Columns  []string
	Products []models.Product
}

// Request is one uploaded catalog file.
type Request struct {
	Branch   string
	Username string
	Filename string
}

type Result struct {
	Summary catalog.UpsertSummary
	Rows    int
}
