package nav

import (
	"strings"

	"keepstock/infrastructure/rbac"
	"keepstock/models"
)

type Link struct {
	Label  string
	Href   string
	Active bool
}

// TopNavData is shared with page renderers.
type TopNavData struct {
	Username string
	Name     string
	Role     string
	Branch   string
	Links    []Link
}

var menu = []struct {
	code  string
	label string
	href  string
}{
	{rbac.ScreenDashboard, "Dashboard", "/keepstock/dashboard"},
	{rbac.ScreenInput, "Input Product", "/keepstock/input"},
	{rbac.ScreenRefill, "Refill Stock", "/keepstock/refill"},
	{rbac.ScreenBoxes, "Box Management", "/keepstock/boxes"},
	{rbac.ScreenPrint, "Print Sheets", "/keepstock/print"},
	{rbac.ScreenActivity, "Activity Logs", "/keepstock/activity"},
	{rbac.ScreenUpload, "Upload CSV", "/keepstock/catalog/upload"},
	{rbac.ScreenUsers, "Staff Accounts", "/keepstock/admin/users"},
	{rbac.ScreenHelp, "Help", "/keepstock/help"},
}

// BuildTopNavData lists the screens the session may see, marking the one
// serving currentPath.
func BuildTopNavData(session models.Session, currentPath string) TopNavData {
	data := TopNavData{
		Username: session.User.Username,
		Name:     session.User.Name,
		Role:     session.User.Role,
		Branch:   session.User.Branch,
	}
	for _, m := range menu {
		if session.ScreenPermissions[m.code] != 1 {
			continue
		}
		data.Links = append(data.Links, Link{
			Label:  m.label,
			Href:   m.href,
			Active: currentPath == m.href || strings.HasPrefix(currentPath, m.href+"/"),
		})
	}
	return data
}

func (d TopNavData) Can(href string) bool {
	for _, l := range d.Links {
		if l.Href == href {
			return true
		}
	}
	return false
}
