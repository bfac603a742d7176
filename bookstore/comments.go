package bookstore

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"
)

const minCommentLength = 5

func validateComment(text string, rating Rating) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minCommentLength {
		return invalid("comment", "must be at least 5 characters")
	}
	if rating < 1 || rating > 5 {
		return invalid("rating", "must be between 1 and 5")
	}
	return nil
}

func (c *Client) Comments(ctx context.Context, bookID ID) ([]Comment, error) {
	if bookID == "" {
		return nil, invalid("book id", "is required")
	}
	var comments []Comment
	err := c.authed(ctx, http.MethodGet, pathID("/comments/book", bookID), nil, &comments)
	return comments, err
}

func (c *Client) PostComment(ctx context.Context, bookID ID, text string, rating Rating) error {
	if bookID == "" {
		return invalid("book id", "is required")
	}
	if err := validateComment(text, rating); err != nil {
		return err
	}
	body := struct {
		BookID  ID     `json:"book_id"`
		Comment string `json:"comment"`
		Rating  Rating `json:"rating"`
	}{bookID, strings.TrimSpace(text), rating}
	return c.authed(ctx, http.MethodPost, "/comments", body, nil)
}

func (c *Client) EditComment(ctx context.Context, bookID, commentID ID, text string, rating Rating) error {
	if bookID == "" || commentID == "" {
		return invalid("comment", "needs a book id and a comment id")
	}
	if err := validateComment(text, rating); err != nil {
		return err
	}
	body := struct {
		Comment string `json:"comment"`
		Rating  Rating `json:"rating"`
	}{strings.TrimSpace(text), rating}
	return c.authed(ctx, http.MethodPut, pathID("/comments/book", bookID)+pathID("/comment", commentID), body, nil)
}

func (c *Client) DeleteComment(ctx context.Context, commentID ID) error {
	if commentID == "" {
		return invalid("comment id", "is required")
	}
	return c.authed(ctx, http.MethodDelete, pathID("/comments", commentID), nil, nil)
}
