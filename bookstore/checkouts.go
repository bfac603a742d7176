package bookstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"
)

func (c *Client) Checkouts(ctx context.Context) ([]Checkout, error) {
	var checkouts []Checkout
	err := c.authed(ctx, http.MethodGet, "/checkouts/user", nil, &checkouts)
	return checkouts, err
}

// CheckoutItems returns the cart items that were checked out together.
func (c *Client) CheckoutItems(ctx context.Context, checkoutID ID) ([]CartItem, error) {
	if checkoutID == "" {
		return nil, invalid("checkout id", "is required")
	}
	var items []CartItem
	err := c.authed(ctx, http.MethodGet, pathID("/checkouts", checkoutID), nil, &items)
	return items, err
}

func (c *Client) Payments(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	err := c.authed(ctx, http.MethodGet, "/payments/user", nil, &payments)
	return payments, err
}

// HasPurchased reports whether the current user paid for the book.
func (c *Client) HasPurchased(ctx context.Context, bookID ID) (bool, error) {
	if bookID == "" {
		return false, invalid("book id", "is required")
	}
	var purchased bool
	err := c.authed(ctx, http.MethodGet, pathID("/payments/book", bookID), nil, &purchased)
	return purchased, err
}

// PaymentURL is the hosted payment page for a checkout's payment token.
func (c *Client) PaymentURL(token string) string {
	return fmt.Sprintf("%s/%s#/payment-list", c.paymentBaseURL, url.PathEscape(token))
}

// CheckoutHistory joins every checkout with its items, their books and its payment.
// Checkouts without a payment are reported as pending.
func (c *Client) CheckoutHistory(ctx context.Context) ([]CheckoutSummary, error) {
	var (
		checkouts []Checkout
		payments  []Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		checkouts, err = c.Checkouts(gctx)
		return err
	})
	g.Go(func() (err error) {
		payments, err = c.Payments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([][]CartItem, len(checkouts))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i, co := range checkouts {
		g.Go(func() (err error) {
			items[i], err = c.CheckoutItems(gctx, co.ID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []CartItem
	for _, its := range items {
		all = append(all, its...)
	}
	books, err := c.booksByID(ctx, all)
	if err != nil {
		return nil, err
	}

	paymentFor := make(map[ID]Payment, len(payments))
	for _, p := range payments {
		paymentFor[p.CheckoutID] = p
	}

	summaries := make([]CheckoutSummary, 0, len(checkouts))
	for i, co := range checkouts {
		for j := range items[i] {
			b := books[items[i][j].BookID]
			items[i][j].Book = &b
		}
		s := CheckoutSummary{Checkout: co, Items: items[i]}
		if p, ok := paymentFor[co.ID]; ok {
			s.TotalPrice = p.TotalPrice
			s.Status = p.StatusID
			s.Token = p.Token
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
