package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"keepstock/frontend/activitylogs"
	adminusers "keepstock/frontend/adminUsers"
	"keepstock/frontend/boxes"
	"keepstock/frontend/catalogupload"
	"keepstock/frontend/dashboard"
	"keepstock/frontend/help"
	"keepstock/frontend/input"
	"keepstock/frontend/login"
	"keepstock/frontend/refill"
	"keepstock/frontend/sheets"
	"keepstock/infrastructure/rbac"
)

var (
	allRoles      = rbac.Roles
	storeAndAdmin = []string{rbac.RoleStore, rbac.RoleAdmin}
	adminOnly     = []string{rbac.RoleAdmin}
)

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler)
	s.router.Post("/login", login.CreateLoginHandler(s.Auth))
	s.router.Post("/logout", login.LogoutHandler(s.Auth))
}

// RegisterKeepstockRoutes registers the authenticated screens under
// /keepstock and records which roles see each one in the menu.
func (s *Server) RegisterKeepstockRoutes(r chi.Router) chi.Router {
	s.Rbac.AddRoles(allRoles, rbac.ScreenDashboard, http.MethodGet, "/keepstock/dashboard")
	r.Get("/dashboard", dashboard.DashboardPageQueryHandler(s.Products, s.Boxes, s.Activity))
	r.Get("/api/activity-chart", dashboard.ActivityChartQueryHandler(s.Activity))

	s.Rbac.AddRoles(storeAndAdmin, rbac.ScreenInput, http.MethodGet, "/keepstock/input")
	r.Get("/input", input.InputPageQueryHandler(s.Products, s.Boxes))
	r.Post("/input", input.InputCommandHandler(s.DB, s.Products, s.Boxes, s.Activity))

	s.Rbac.AddRoles(storeAndAdmin, rbac.ScreenRefill, http.MethodGet, "/keepstock/refill")
	r.Get("/refill", refill.RefillPageQueryHandler(s.Products, s.Boxes))
	r.Post("/refill", refill.RefillCommandHandler(s.DB, s.Boxes, s.Activity))

	s.Rbac.AddRoles(allRoles, rbac.ScreenBoxes, http.MethodGet, "/keepstock/boxes")
	r.Get("/boxes", boxes.BoxesPageQueryHandler(s.Products, s.Boxes))

	s.Rbac.AddRoles(storeAndAdmin, rbac.ScreenPrint, http.MethodGet, "/keepstock/print")
	r.Get("/print", sheets.PrintPageQueryHandler(s.Products, s.Boxes))
	r.Get("/print/sheets.pdf", sheets.BoxSheetsPDFQueryHandler(s.Boxes))
	r.Get("/print/{file}", sheets.BoxSheetPDFQueryHandler(s.Boxes))

	s.Rbac.AddRoles(allRoles, rbac.ScreenActivity, http.MethodGet, "/keepstock/activity")
	r.Get("/activity", activitylogs.ActivityLogsPageQueryHandler(s.Products, s.Activity))
	r.Get("/activity.csv", activitylogs.ActivityLogsCSVHandler(s.Activity))

	s.Rbac.AddRoles(adminOnly, rbac.ScreenUpload, http.MethodGet, "/keepstock/catalog/upload")
	r.Get("/catalog/upload", catalogupload.CatalogUploadPageQueryHandler(s.Products))
	r.Post("/catalog/upload", catalogupload.CatalogUploadCommandHandler(s.DB, s.Products, s.Activity))

	s.Rbac.AddRoles(adminOnly, rbac.ScreenUsers, http.MethodGet, "/keepstock/admin/users")
	r.Get("/admin/users", adminusers.UsersPageQueryHandler(s.DB, s.Products))
	r.Post("/admin/users", adminusers.SaveUserCommandHandler(s.Auth))

	s.Rbac.AddRoles(allRoles, rbac.ScreenHelp, http.MethodGet, "/keepstock/help")
	r.Get("/help", help.HelpPageQueryHandler())
	return r
}
