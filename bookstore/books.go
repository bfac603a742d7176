package bookstore

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ListBooks returns one page of the catalog. HasMore is true when the page was not
// empty; the API reports no total.
func (c *Client) ListBooks(ctx context.Context, q BookQuery) (BookPage, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Size < 1 {
		q.Size = defaultPageSize
	}

	params := url.Values{}
	params.Set("search", q.Search)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("size", strconv.Itoa(q.Size))

	var books []Book
	if err := c.authed(ctx, http.MethodGet, "/books?"+params.Encode(), nil, &books); err != nil {
		return BookPage{}, err
	}
	return BookPage{
		Books:   books,
		Page:    q.Page,
		Size:    q.Size,
		HasMore: len(books) > 0,
	}, nil
}

func (c *Client) GetBook(ctx context.Context, id ID) (Book, error) {
	if id == "" {
		return Book{}, invalid("book id", "is required")
	}
	var book Book
	err := c.authed(ctx, http.MethodGet, pathID("/books", id), nil, &book)
	return book, err
}

func validateBook(b Book) error {
	if strings.TrimSpace(b.Title) == "" {
		return invalid("title", "is required")
	}
	if b.Price < 0 {
		return invalid("price", "must not be negative")
	}
	return nil
}

// CreateBook adds a book to the catalog. Admin only.
func (c *Client) CreateBook(ctx context.Context, b Book) (Book, error) {
	if err := validateBook(b); err != nil {
		return Book{}, err
	}
	b.ID = ""
	created := b
	err := c.authed(ctx, http.MethodPost, "/books", b, &created)
	return created, err
}

// UpdateBook replaces every field of the book with b's. Admin only.
func (c *Client) UpdateBook(ctx context.Context, b Book) error {
	if b.ID == "" {
		return invalid("book id", "is required")
	}
	if err := validateBook(b); err != nil {
		return err
	}
	return c.authed(ctx, http.MethodPatch, "/books", b, nil)
}

func (c *Client) DeleteBook(ctx context.Context, id ID) error {
	if id == "" {
		return invalid("book id", "is required")
	}
	return c.authed(ctx, http.MethodDelete, pathID("/books", id), nil, nil)
}

// UploadBookCover stores a cover image and returns its URL, ready for Book.Image.
func (c *Client) UploadBookCover(ctx context.Context, filename string, file io.Reader) (string, error) {
	return c.upload(ctx, "/books/cover", filename, file)
}
