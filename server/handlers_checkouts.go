package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/yogarn/filkompedia-client/catalog"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

type checkoutResult struct {
	RedirectURL string `json:"redirect_url"`
	Token       string `json:"token"`
}

func (s *Server) CheckoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			CartsID []int64 `json:"carts_id"`
		}
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		_, payment, err := s.repos.Catalog.Checkout(sessionUser(r).ID, body.CartsID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, "checkout created", checkoutResult{
			RedirectURL: fmt.Sprintf("%s/%s", s.config.GetPaymentBaseURL(), payment.Token),
			Token:       payment.Token,
		})
	}
}

func (s *Server) UserCheckoutsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "checkouts retrieved", s.repos.Catalog.CheckoutsByUser(sessionUser(r).ID))
	}
}

func (s *Server) CheckoutItemsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		items, err := s.repos.Catalog.CheckoutItems(sessionUser(r).ID, id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "checkout retrieved", items)
	}
}

func (s *Server) UserPaymentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "payments retrieved", s.repos.Catalog.PaymentsByUser(sessionUser(r).ID))
	}
}

// PaymentBookHandler answers whether the user has paid for the book
func (s *Server) PaymentBookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "purchase checked", s.repos.Catalog.HasPurchased(sessionUser(r).ID, id))
	}
}

// transactionStatuses maps the payment provider's transaction_status values.
var transactionStatuses = map[string]catalog.PaymentStatus{
	"pending":    catalog.PaymentPending,
	"capture":    catalog.PaymentSuccess,
	"settlement": catalog.PaymentSuccess,
	"deny":       catalog.PaymentDenied,
	"cancel":     catalog.PaymentCancelled,
	"expire":     catalog.PaymentCancelled,
}

// PaymentNotificationHandler receives the payment provider's status callback.
// Development only; nothing verifies the sender.
func (s *Server) PaymentNotificationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			OrderID           uuid.UUID `json:"order_id"`
			TransactionStatus string    `json:"transaction_status"`
		}
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		status, ok := transactionStatuses[body.TransactionStatus]
		if !ok {
			s.writeError(w, r, apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown transaction status %q", body.TransactionStatus))
			return
		}
		if err := s.repos.Catalog.SetPaymentStatus(body.OrderID, status); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "payment updated")
	}
}
