package bookstore

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.authed(ctx, http.MethodGet, "/users/me", nil, &u)
	return u, err
}

func (c *Client) User(ctx context.Context, id ID) (User, error) {
	if id == "" {
		return User{}, invalid("user id", "is required")
	}
	var u User
	err := c.authed(ctx, http.MethodGet, pathID("/users", id), nil, &u)
	return u, err
}

// RequireRole returns the signed-in user when they hold role, ErrForbidden otherwise.
func (c *Client) RequireRole(ctx context.Context, role RoleID) (User, error) {
	u, err := c.Me(ctx)
	if err != nil {
		return User{}, err
	}
	if u.RoleID != role {
		return u, apperrors.Wrapf(apperrors.ErrForbidden, "%s role required", role)
	}
	return u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, username, profilePicture string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return invalid("username", "is required")
	}
	if len([]rune(username)) > maxUsernameLength {
		return invalid("username", "must be at most 32 characters")
	}
	body := struct {
		Username       string `json:"username"`
		ProfilePicture string `json:"profilePicture"`
	}{username, profilePicture}
	return c.authed(ctx, http.MethodPatch, "/users", body, nil)
}

func (c *Client) UploadProfilePicture(ctx context.Context, filename string, file io.Reader) (string, error) {
	return c.upload(ctx, "/users/picture", filename, file)
}

// DeleteAccount deletes the user and, when a session store is configured, forgets
// the local session.
func (c *Client) DeleteAccount(ctx context.Context, id ID) error {
	if id == "" {
		return invalid("user id", "is required")
	}
	if err := c.authed(ctx, http.MethodDelete, pathID("/users", id), nil, nil); err != nil {
		return err
	}
	if c.session == nil {
		return nil
	}
	return c.Logout(ctx)
}

// Users lists accounts page by page. Admin only.
func (c *Client) Users(ctx context.Context, page, size int) ([]User, error) {
	if page < 1 {
		page = defaultPage
	}
	if size < 1 {
		size = defaultPageSize
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	var users []User
	err := c.authed(ctx, http.MethodGet, "/users?"+params.Encode(), nil, &users)
	return users, err
}

// SetRole changes a user's role. Admin only.
func (c *Client) SetRole(ctx context.Context, userID ID, role RoleID) error {
	if userID == "" {
		return invalid("user id", "is required")
	}
	if role != RoleAdmin && role != RoleCustomer {
		return invalid("role", "must be 1 (admin) or 2 (customer)")
	}
	body := struct {
		ID     ID     `json:"id"`
		RoleID RoleID `json:"roleId"`
	}{userID, role}
	return c.authed(ctx, http.MethodPut, "/users/role", body, nil)
}
