package server

import (
	"fmt"
	"net/http"
)

func (s *Server) UserCartsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		carts := s.repos.Catalog.CartsByUser(sessionUser(r).ID)
		writeJSON(w, http.StatusOK, "carts retrieved", carts)
	}
}

func (s *Server) AddCartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			BookID int64 `json:"book_id"`
			Amount int   `json:"amount"`
		}
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		cart, err := s.repos.Catalog.AddToCart(sessionUser(r).ID, body.BookID, body.Amount)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, "added to cart", cart)
	}
}

func (s *Server) UpdateCartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			CartID int64 `json:"cart_id"`
			Amount int   `json:"amount"`
		}
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.repos.Catalog.UpdateCart(sessionUser(r).ID, body.CartID, body.Amount); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "cart updated")
	}
}

func (s *Server) DeleteCartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.repos.Catalog.DeleteCart(sessionUser(r).ID, id); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, fmt.Sprintf("cart %d removed", id))
	}
}
