package server

import (
	"context"
	"net/http"

	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
	"github.com/yogarn/filkompedia-client/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authenticated *users.User
	ContextKeyUser ContextKey = "user"
	// ContextKeyClaims stores the parsed access token claims
	ContextKeyClaims ContextKey = "claims"
)

// RequireSession validates the access_token cookie against the server clock and
// loads its user. Missing, expired, or orphaned tokens answer 401.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, err := s.auth.Authenticate(cookieValue(r, accessTokenCookie))
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, err.Error())
				return
			}

			user, err := s.repos.Users.GetByID(claims.Subject)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			ctx = context.WithValue(ctx, ContextKeyUser, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireRole lets through users holding role. Chain after RequireSession.
func (s *Server) RequireRole(role users.RoleID) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user := sessionUser(r)
			if user == nil {
				writeMessage(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
				return
			}
			if user.RoleID != role {
				writeMessage(w, http.StatusForbidden, apperrors.ErrForbidden.Error())
				return
			}
			next(w, r)
		}
	}
}

func sessionUser(r *http.Request) *users.User {
	user, _ := r.Context().Value(ContextKeyUser).(*users.User)
	return user
}
