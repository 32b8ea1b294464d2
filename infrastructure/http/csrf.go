package http

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
)

// Double-submit token: the cookie is readable by the page script, which
// copies it into every POST form as _csrf.
const (
	csrfCookieName = "X-CSRF-Token"
	csrfHeaderName = "X-CSRF-Token"
	csrfFieldName  = "_csrf"
	csrfTokenBytes = 32
)

func (s *Server) CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, issued := csrfTokenFromCookie(r)
		if !issued {
			token = newCSRFToken()
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: false,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}
		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		// A token minted on this request cannot have been submitted yet.
		if !issued || !validCSRFToken(token, submittedCSRFToken(r)) {
			slog.Warn("csrf token rejected", slog.String("method", r.Method), slog.String("path", r.URL.Path))
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

func csrfTokenFromCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(csrfCookieName)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(c.Value)
	return v, v != ""
}

func submittedCSRFToken(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(csrfHeaderName)); v != "" {
		return v
	}
	return strings.TrimSpace(r.FormValue(csrfFieldName))
}

func validCSRFToken(expected, provided string) bool {
	return provided != "" && subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

func newCSRFToken() string {
	buf := make([]byte, csrfTokenBytes)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
