package adminusers

import "keepstock/frontend/shared/html"

type UserView struct {
	ID       int64
	Username string
	Name     string
	Role     string
	Branch   string
}

type PageData struct {
	html.Frame
	Users    []UserView
	Roles    []string
	Branches []string
}
