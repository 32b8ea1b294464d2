package activitylogs

import (
	"keepstock/frontend/shared/html"
	"keepstock/models"
)

type PageData struct {
	html.Frame
	Text       string
	Action     string
	Start      string
	End        string
	Branch     string
	Branches   []string
	Actions    []string
	ShowBranch bool
	ExportURL  string
	Logs       []models.ActivityLog
}
