package login

import (
	"log/slog"
	"net/http"

	"keepstock/infrastructure/auth"
	sessioncookie "keepstock/infrastructure/session"
)

// LogoutHandler removes session state and clears cookie.
func LogoutHandler(authSvc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := sessioncookie.TokenFromRequest(r); token != "" {
			if err := authSvc.Logout(r.Context(), token); err != nil {
				slog.Error("logout failed", slog.Any("err", err))
			}
		}
		http.SetCookie(w, sessioncookie.Cookie("", 0))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
