package help

import (
	"net/http"

	sessioncontext "keepstock/frontend/shared/context"
	"keepstock/frontend/shared/html"
	"keepstock/frontend/shared/nav"
	"keepstock/infrastructure/rbac"
)

func HelpPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		data := PageData{
			Frame: html.Frame{
				Title: "Help",
				Nav:   nav.BuildTopNavData(session, r.URL.Path),
			},
			IsAdmin: session.User.Role == rbac.RoleAdmin,
			IsStore: session.User.Role == rbac.RoleStore,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := HelpPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render help page", http.StatusInternalServerError)
			return
		}
	}
}
