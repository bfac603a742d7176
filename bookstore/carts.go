package bookstore

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// fetchLimit bounds concurrent lookups in composite reads.
const fetchLimit = 8

// Cart returns the items not yet checked out.
func (c *Client) Cart(ctx context.Context) ([]CartItem, error) {
	var all []CartItem
	if err := c.authed(ctx, http.MethodGet, "/carts/user", nil, &all); err != nil {
		return nil, err
	}
	open := make([]CartItem, 0, len(all))
	for _, item := range all {
		if !item.CheckedOut() {
			open = append(open, item)
		}
	}
	return open, nil
}

// CartWithBooks returns the open cart items with Book filled in.
func (c *Client) CartWithBooks(ctx context.Context) ([]CartItem, error) {
	items, err := c.Cart(ctx)
	if err != nil {
		return nil, err
	}
	books, err := c.booksByID(ctx, items)
	if err != nil {
		return nil, err
	}
	for i := range items {
		b := books[items[i].BookID]
		items[i].Book = &b
	}
	return items, nil
}

// booksByID fetches each distinct book referenced by items concurrently.
func (c *Client) booksByID(ctx context.Context, items []CartItem) (map[ID]Book, error) {
	ids := make([]ID, 0, len(items))
	seen := make(map[ID]bool, len(items))
	for _, item := range items {
		if !seen[item.BookID] {
			seen[item.BookID] = true
			ids = append(ids, item.BookID)
		}
	}

	books := make([]Book, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i, id := range ids {
		g.Go(func() error {
			book, err := c.GetBook(gctx, id)
			if err != nil {
				return err
			}
			books[i] = book
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[ID]Book, len(ids))
	for i, id := range ids {
		byID[id] = books[i]
	}
	return byID, nil
}

func (c *Client) AddToCart(ctx context.Context, bookID ID, amount int) error {
	if bookID == "" {
		return invalid("book id", "is required")
	}
	if amount < 1 {
		return invalid("amount", "must be at least 1")
	}
	body := struct {
		BookID ID  `json:"book_id"`
		Amount int `json:"amount"`
	}{bookID, amount}
	return c.authed(ctx, http.MethodPost, "/carts", body, nil)
}

// UpdateCartAmount sets an item's quantity. Dropping below one is refused; remove
// the item instead.
func (c *Client) UpdateCartAmount(ctx context.Context, cartID ID, amount int) error {
	if cartID == "" {
		return invalid("cart id", "is required")
	}
	if amount < 1 {
		return invalid("amount", "must be at least 1, remove the item instead")
	}
	body := struct {
		CartID ID  `json:"cart_id"`
		Amount int `json:"amount"`
	}{cartID, amount}
	return c.authed(ctx, http.MethodPatch, "/carts", body, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, cartID ID) error {
	if cartID == "" {
		return invalid("cart id", "is required")
	}
	return c.authed(ctx, http.MethodDelete, pathID("/carts", cartID), nil, nil)
}

// Checkout turns the given cart items into a checkout and returns where to pay.
func (c *Client) Checkout(ctx context.Context, cartIDs []ID) (CheckoutResult, error) {
	if len(cartIDs) == 0 {
		return CheckoutResult{}, invalid("cart ids", "must not be empty")
	}
	body := struct {
		CartsID []ID `json:"carts_id"`
	}{cartIDs}

	var res CheckoutResult
	err := c.authed(ctx, http.MethodPost, "/checkouts/", body, &res)
	return res, err
}
