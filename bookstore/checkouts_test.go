package bookstore_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogarn/filkompedia-client/bookstore"
)

func TestCheckoutHistory(t *testing.T) {
	f := setupTestFixture(t)
	var lookups atomic.Int32
	serveBooks(t, f, &lookups)
	f.mux.HandleFunc("GET /checkouts/user", func(w http.ResponseWriter, _ *http.Request) {
		writeData(t, w, http.StatusOK, []map[string]any{
			{"id": "co-1", "user_id": 4},
			{"id": "co-2", "user_id": 4},
		})
	})
	f.mux.HandleFunc("GET /payments/user", func(w http.ResponseWriter, _ *http.Request) {
		writeData(t, w, http.StatusOK, []map[string]any{
			{"id": "p-1", "checkout_id": "co-1", "total_price": 3000, "status_id": 1, "token": "tok-1"},
		})
	})
	f.mux.HandleFunc("GET /checkouts/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "co-1":
			writeData(t, w, http.StatusOK, []map[string]any{
				{"id": 1, "book_id": 10, "amount": 2, "checkout_id": "co-1"},
				{"id": 2, "book_id": 11, "amount": 1, "checkout_id": "co-1"},
			})
		default:
			writeData(t, w, http.StatusOK, []map[string]any{
				{"id": 3, "book_id": 10, "amount": 1, "checkout_id": "co-2"},
			})
		}
	})

	history, err := f.client.CheckoutHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)

	paid := history[0]
	assert.Equal(t, bookstore.ID("co-1"), paid.Checkout.ID)
	assert.Equal(t, bookstore.PaymentSuccess, paid.Status)
	assert.True(t, paid.Status.Settled())
	assert.Equal(t, 3000.0, paid.TotalPrice)
	assert.Equal(t, "tok-1", paid.Token)
	require.Len(t, paid.Items, 2)
	assert.Equal(t, "Book 11", paid.Items[1].Book.Title)

	pending := history[1]
	assert.Equal(t, bookstore.PaymentPending, pending.Status)
	assert.False(t, pending.Status.Settled())
	assert.Equal(t, "waiting for payment", pending.Status.String())
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "Book 10", pending.Items[0].Book.Title)

	assert.EqualValues(t, 2, lookups.Load())
}

func TestHasPurchased(t *testing.T) {
	f := setupTestFixture(t)
	f.mux.HandleFunc("GET /payments/book/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, http.StatusOK, r.PathValue("id") == "10")
	})

	ok, err := f.client.HasPurchased(context.Background(), "10")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.client.HasPurchased(context.Background(), "11")
	require.NoError(t, err)
	assert.False(t, ok)
}
