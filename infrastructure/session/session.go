// Package session holds the browser side of a staff session: the cookie
// and its opaque token.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"
)

const (
	CookieName = "X-Session-Token"
	DefaultTTL = 12 * time.Hour
)

// Cookie builds the session cookie. A non-positive ttl clears it.
func Cookie(token string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl / time.Second)
	if ttl <= 0 {
		token = ""
		maxAge = -1
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

// TokenFromRequest returns the cookie token, or "" when absent.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func NewToken() string {
	buf := make([]byte, 24)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
