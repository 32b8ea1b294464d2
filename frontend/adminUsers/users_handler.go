package adminusers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	sessioncontext "keepstock/frontend/shared/context"
	"keepstock/frontend/shared/html"
	"keepstock/frontend/shared/nav"
	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/auth"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/rbac"
	"keepstock/infrastructure/sqlite"
)

const usersPath = "/keepstock/admin/users"

// UsersPageQueryHandler renders the staff account list.
func UsersPageQueryHandler(db *sqlite.DB, products *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		users, err := LoadUsers(r.Context(), db)
		if err != nil {
			slog.Error("admin users: failed to load data", slog.Any("err", err))
			http.Error(w, "failed to load users", http.StatusInternalServerError)
			return
		}
		branches, err := products.Branches(r.Context())
		if err != nil {
			slog.Error("list branches", slog.Any("err", err))
		}

		q := r.URL.Query()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := UsersListPage(PageData{
			Frame: html.Frame{
				Title:  "Staff Accounts",
				Nav:    nav.BuildTopNavData(session, r.URL.Path),
				Status: q.Get("status"),
				Error:  q.Get("error"),
			},
			Users:    users,
			Roles:    rbac.Roles,
			Branches: branches,
		}).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render users page", http.StatusInternalServerError)
			return
		}
	}
}

// SaveUserCommandHandler creates an account or replaces the name, role,
// branch and password of an existing one.
func SaveUserCommandHandler(authSvc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, usersPath+"?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		c := auth.Credential{
			Username: strings.TrimSpace(r.FormValue("username")),
			Name:     strings.TrimSpace(r.FormValue("name")),
			Password: r.FormValue("password"),
			Role:     strings.TrimSpace(r.FormValue("role")),
			Branch:   strings.TrimSpace(r.FormValue("branch")),
		}
		if err := authSvc.UpsertUser(r.Context(), c); err != nil {
			if apperr.As(err) == nil {
				slog.Error("admin users: save user", slog.String("username", c.Username), slog.Any("err", err))
			}
			http.Redirect(w, r, usersPath+"?error="+url.QueryEscape(apperr.UserMessage(err, "failed to save user")), http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, usersPath+"?status="+url.QueryEscape("saved user "+c.Username), http.StatusSeeOther)
	}
}
