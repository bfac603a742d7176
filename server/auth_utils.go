package server

import (
	"net/http"
	"time"

	"github.com/yogarn/filkompedia-client/auth"
)

const (
	// accessTokenCookie carries the short lived JWT checked by RequireSession
	accessTokenCookie = "access_token"
	// refreshTokenCookie carries the opaque token spent by the refresh route
	refreshTokenCookie = "refresh_token"
)

// SetSessionCookies hands a session to the client. Lifetimes are relative so the
// client's clock decides when its copies lapse.
func (s *Server) SetSessionCookies(w http.ResponseWriter, r *http.Request, session *auth.Session) {
	s.setCookie(w, r, accessTokenCookie, session.AccessToken, s.auth.AccessTTL())
	s.setCookie(w, r, refreshTokenCookie, session.RefreshToken, s.auth.RefreshTTL())
}

// ClearSessionCookies tells the client to drop both session cookies.
func (s *Server) ClearSessionCookies(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, r, accessTokenCookie, "", -1)
	s.setCookie(w, r, refreshTokenCookie, "", -1)
}

func (s *Server) setCookie(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration) {
	maxAge := int(ttl / time.Second)
	if ttl < 0 {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
