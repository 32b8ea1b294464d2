package login

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"keepstock/infrastructure/auth"
	sessioncookie "keepstock/infrastructure/session"
)

// CreateLoginHandler authenticates the user and issues a session cookie.
func CreateLoginHandler(authSvc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		if username == "" || password == "" {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("username and password are required"), http.StatusSeeOther)
			return
		}

		_, session, ok, err := authSvc.Login(r.Context(), username, password)
		if err != nil {
			slog.Error("login failed", slog.String("username", username), slog.Any("err", err))
			http.Redirect(w, r, "/login?error="+url.QueryEscape("authentication failed"), http.StatusSeeOther)
			return
		}
		if !ok {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("invalid username or password"), http.StatusSeeOther)
			return
		}

		http.SetCookie(w, sessioncookie.Cookie(session.ID, authSvc.TTL()))
		http.Redirect(w, r, "/keepstock/dashboard", http.StatusSeeOther)
	}
}
