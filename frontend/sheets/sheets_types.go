package sheets

import (
	"keepstock/frontend/boxes"
	"keepstock/frontend/shared/html"
)

type PageData struct {
	html.Frame
	Query      string
	Category   string
	Branch     string
	Branches   []string
	Categories []string
	Rows       []boxes.BoxRow
}
