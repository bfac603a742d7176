package bookstore_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogarn/filkompedia-client/bookstore"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

const nilUUID = "00000000-0000-0000-0000-000000000000"

func serveBooks(t *testing.T, f *testFixture, lookups *atomic.Int32) {
	t.Helper()
	f.mux.HandleFunc("GET /books/{id}", func(w http.ResponseWriter, r *http.Request) {
		lookups.Add(1)
		id := r.PathValue("id")
		writeData(t, w, http.StatusOK, map[string]any{"id": id, "title": "Book " + id, "price": 1000})
	})
}

func TestCart(t *testing.T) {
	f := setupTestFixture(t)
	var lookups atomic.Int32
	serveBooks(t, f, &lookups)
	f.mux.HandleFunc("GET /carts/user", func(w http.ResponseWriter, _ *http.Request) {
		writeData(t, w, http.StatusOK, []map[string]any{
			{"id": 1, "book_id": 10, "amount": 2, "checkout_id": nilUUID},
			{"id": 2, "book_id": 11, "amount": 1, "checkout_id": "3f8a5a3e-1c1b-4d7e-9d43-0a1c6e0f1b2a"},
			{"id": 3, "book_id": 10, "amount": 1, "checkout_id": nilUUID},
		})
	})

	items, err := f.client.Cart(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, bookstore.ID("1"), items[0].ID)
	assert.Equal(t, bookstore.ID("3"), items[1].ID)

	items, err = f.client.CartWithBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		require.NotNil(t, item.Book)
		assert.Equal(t, "Book 10", item.Book.Title)
	}
	assert.EqualValues(t, 1, lookups.Load(), "each distinct book is fetched once")
}

func TestCartWithBooksFailsOnMissingBook(t *testing.T) {
	f := setupTestFixture(t)
	f.mux.HandleFunc("GET /carts/user", func(w http.ResponseWriter, _ *http.Request) {
		writeData(t, w, http.StatusOK, []map[string]any{{"id": 1, "book_id": 10, "amount": 1, "checkout_id": nilUUID}})
	})
	f.mux.HandleFunc("GET /books/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "book not found")
	})

	_, err := f.client.CartWithBooks(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartMutations(t *testing.T) {
	f := setupTestFixture(t)
	var requests atomic.Int32
	f.mux.HandleFunc("POST /carts", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, map[string]any{"book_id": float64(10), "amount": float64(2)}, decodeBody(t, r))
		writeData(t, w, http.StatusCreated, nil)
	})
	f.mux.HandleFunc("PATCH /carts", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, map[string]any{"cart_id": float64(1), "amount": float64(3)}, decodeBody(t, r))
		writeData(t, w, http.StatusOK, nil)
	})
	f.mux.HandleFunc("DELETE /carts/{id}", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "1", r.PathValue("id"))
		writeData(t, w, http.StatusOK, nil)
	})

	ctx := context.Background()
	require.NoError(t, f.client.AddToCart(ctx, "10", 2))
	require.NoError(t, f.client.UpdateCartAmount(ctx, "1", 3))
	require.NoError(t, f.client.RemoveCartItem(ctx, "1"))
	assert.EqualValues(t, 3, requests.Load())

	t.Run("amount below one is refused locally", func(t *testing.T) {
		err := f.client.UpdateCartAmount(ctx, "1", 0)
		var vErr *bookstore.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "amount", vErr.Field)
		assert.ErrorIs(t, f.client.AddToCart(ctx, "10", 0), apperrors.ErrInvalidInput)
		assert.EqualValues(t, 3, requests.Load())
	})
}

func TestCheckout(t *testing.T) {
	f := setupTestFixture(t)
	f.mux.HandleFunc("POST /checkouts/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, map[string]any{"carts_id": []any{float64(1), float64(3)}}, decodeBody(t, r))
		writeData(t, w, http.StatusCreated, map[string]any{"redirect_url": "https://pay.test/redirection/tok", "token": "tok"})
	})

	res, err := f.client.Checkout(context.Background(), []bookstore.ID{"1", "3"})
	require.NoError(t, err)
	assert.Equal(t, bookstore.CheckoutResult{RedirectURL: "https://pay.test/redirection/tok", Token: "tok"}, res)

	_, err = f.client.Checkout(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
