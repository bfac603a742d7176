package bookstore

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

const (
	maxUsernameLength = 32
	minPasswordLength = 8
)

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

// Login starts a session. The API answers with the session cookies, which land in
// the shared cookie jar.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" {
		return invalid("email", "is required")
	}
	if password == "" {
		return invalid("password", "is required")
	}
	body := map[string]string{"email": email, "password": password}
	return c.public(ctx, http.MethodPost, "/auths/login", body, nil)
}

// Register creates an unverified account and asks the API to mail its OTP.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if err := validateRegister(req); err != nil {
		return err
	}
	if err := c.public(ctx, http.MethodPost, "/auths/register", req, nil); err != nil {
		return err
	}
	return c.SendOTP(ctx, req.Email)
}

func validateRegister(req RegisterRequest) error {
	n := utf8.RuneCountInString(strings.TrimSpace(req.Username))
	switch {
	case n == 0:
		return invalid("username", "is required")
	case n > maxUsernameLength:
		return invalid("username", "must be at most 32 characters")
	case strings.TrimSpace(req.Email) == "":
		return invalid("email", "is required")
	case len(req.Password) < minPasswordLength:
		return invalid("password", "must be at least 8 characters")
	}
	return nil
}

func (c *Client) SendOTP(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return invalid("email", "is required")
	}
	return c.public(ctx, http.MethodPost, "/auths/send-otp", map[string]string{"email": email}, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	if strings.TrimSpace(email) == "" {
		return invalid("email", "is required")
	}
	if !otpPattern.MatchString(otp) {
		return invalid("otp", "must be 6 digits")
	}
	body := map[string]string{"email": email, "otp": otp}
	return c.public(ctx, http.MethodPost, "/auths/verify-otp", body, nil)
}

// Logout forgets the local session. The API keeps no server-side logout.
func (c *Client) Logout(context.Context) error {
	if c.session == nil {
		return apperrors.Wrapf(apperrors.ErrUnsupported, "logout without a session store")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return apperrors.Wrapf(err, "parsing api base url")
	}
	if err := c.session.Clear(u); err != nil {
		return apperrors.Wrapf(err, "clearing session")
	}
	c.logger.Info().Str("host", u.Host).Msg("session cleared")
	return nil
}
