package server

import (
	"net/http"

	"github.com/yogarn/filkompedia-client/catalog"
)

const defaultPageSize = 10

func (s *Server) ListBooksHandler() http.HandlerFunc {
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
		books := s.repos.Catalog.ListBooks(r.URL.Query().Get("search"), page, size)
		writeJSON(w, http.StatusOK, "books retrieved", books)
	}
}

func (s *Server) GetBookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		book, err := s.repos.Catalog.GetBook(id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "book retrieved", book)
	}
}

func (s *Server) CreateBookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var book catalog.Book
		if err := decodeJSON(w, r, &book); err != nil {
			s.writeError(w, r, err)
			return
		}
		created, err := s.repos.Catalog.CreateBook(book)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, "book created", created)
	}
}

// UpdateBookHandler replaces the book named by the body's id
func (s *Server) UpdateBookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var book catalog.Book
		if err := decodeJSON(w, r, &book); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.repos.Catalog.UpdateBook(book); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "book updated", book)
	}
}

func (s *Server) DeleteBookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.repos.Catalog.DeleteBook(id); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "book deleted")
	}
}

func (s *Server) UploadBookCoverHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location, err := s.saveUpload(w, r, "cover")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, "cover uploaded", location)
	}
}
