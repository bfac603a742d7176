package server

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
	"github.com/yogarn/filkompedia-client/users"
)

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "user retrieved", sessionUser(r))
	}
}

func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.repos.Users.GetByID(r.PathValue("id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "user retrieved", user)
	}
}

func (s *Server) UpdateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username       string `json:"username"`
			ProfilePicture string `json:"profilePicture"`
		}
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := users.ValidateUsername(body.Username); err != nil {
			s.writeError(w, r, apperrors.Wrapf(apperrors.ErrInvalidInput, "%v", err))
			return
		}

		user := sessionUser(r)
		user.Username = strings.TrimSpace(body.Username)
		user.ProfilePicture = body.ProfilePicture
		if err := s.repos.Users.Update(user); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "profile updated", user)
	}
}

func (s *Server) UploadProfilePictureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location, err := s.saveUpload(w, r, "profile")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, "picture uploaded", location)
	}
}

// DeleteUserHandler deletes an account. Users may delete themselves, admins anyone.
func (s *Server) DeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := sessionUser(r)
		id := r.PathValue("id")
		if id != caller.ID && !caller.IsAdmin() {
			s.writeError(w, r, apperrors.ErrForbidden)
			return
		}
		if err := s.repos.Users.Delete(id); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.auth.Revoke(id); err != nil {
			s.logger.Warn().Err(err).Str("user", id).Msg("revoking refresh token")
		}
		if id == caller.ID {
			s.ClearSessionCookies(w, r)
		}
		writeMessage(w, http.StatusOK, "user deleted")
	}
}

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := queryInt(r, "page", 1)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		size, err := queryInt(r, "size", defaultPageSize)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		list, err := s.repos.Users.List((page-1)*size, size)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "users retrieved", list)
	}
}

func (s *Server) SetRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID     json.Number  `json:"id"` // numeric, sent quoted or bare
			RoleID users.RoleID `json:"roleId"`
		}
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		if !body.RoleID.Valid() {
			s.writeError(w, r, apperrors.Wrapf(apperrors.ErrInvalidInput, "role must be 1 or 2"))
			return
		}
		user, err := s.repos.Users.GetByID(body.ID.String())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		user.RoleID = body.RoleID
		if err := s.repos.Users.Update(user); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "role updated")
	}
}
