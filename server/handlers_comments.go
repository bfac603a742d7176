package server

import (
	"net/http"

	"github.com/yogarn/filkompedia-client/catalog"
	"github.com/yogarn/filkompedia-client/users"
)

type commentBody struct {
	BookID  int64  `json:"book_id"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

func authorOf(user *users.User) catalog.Author {
	return catalog.Author{
		UserID:         user.ID,
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
		Admin:          user.IsAdmin(),
	}
}

func (s *Server) BookCommentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		comments, err := s.repos.Catalog.Comments(id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "comments retrieved", comments)
	}
}

func (s *Server) PostCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body commentBody
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		comment, err := s.repos.Catalog.AddComment(authorOf(sessionUser(r)), body.BookID, body.Comment, body.Rating)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, "comment posted", comment)
	}
}

func (s *Server) EditCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookID, err := pathInt(r, "bookID")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		commentID, err := pathUUID(r, "commentID")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		var body commentBody
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.repos.Catalog.EditComment(authorOf(sessionUser(r)), bookID, commentID, body.Comment, body.Rating); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "comment updated")
	}
}

func (s *Server) DeleteCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.repos.Catalog.DeleteComment(authorOf(sessionUser(r)), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "comment deleted")
	}
}
