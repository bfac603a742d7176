// Package bookstore is a typed client for the FilkomPedia bookstore API.
//
// Calls that need a session go through a gateway.Gateway, which renews an expired
// session and replays the call. Login, registration and OTP calls are sent with the
// gateway's plain HTTP client so they share its cookie jar without triggering renewal.
package bookstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yogarn/filkompedia-client/gateway"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

// DefaultPaymentBaseURL is the payment provider's hosted checkout page.
const DefaultPaymentBaseURL = "https://app.sandbox.midtrans.com/snap/v4/redirection"

const maxErrorBody = 1 << 20

// SessionStore forgets the session cookies held for an API host.
type SessionStore interface {
	Clear(u *url.URL) error
}

type Client struct {
	baseURL        string
	paymentBaseURL string
	gw             *gateway.Gateway
	plain          *http.Client
	session        SessionStore
	logger         zerolog.Logger
}

type Option func(*Client)

func WithPaymentBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.paymentBaseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithSessionStore lets Logout and DeleteAccount drop the persisted session.
func WithSessionStore(s SessionStore) Option {
	return func(c *Client) { c.session = s }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API at baseURL that sends authenticated calls
// through gw.
func New(baseURL string, gw *gateway.Gateway, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "api base url %q", baseURL)
	}
	if gw == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "gateway is required")
	}

	c := &Client{
		baseURL:        baseURL,
		paymentBaseURL: DefaultPaymentBaseURL,
		gw:             gw,
		plain:          gw.HTTPClient(),
		logger:         log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// authed sends a JSON call through the gateway and decodes the envelope's data into out.
func (c *Client) authed(ctx context.Context, method, path string, in, out any) error {
	return c.call(ctx, true, method, path, in, out)
}

// public sends a JSON call without session renewal.
func (c *Client) public(ctx context.Context, method, path string, in, out any) error {
	return c.call(ctx, false, method, path, in, out)
}

func (c *Client) call(ctx context.Context, auth bool, method, path string, in, out any) error {
	header := http.Header{"Accept": {"application/json"}}
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return apperrors.Wrapf(err, "encoding %s %s", method, path)
		}
		header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(ctx, auth, method, path, header, body)
	if err != nil {
		return apperrors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()
	return apperrors.Wrapf(decode(resp, out), "%s %s", method, path)
}

func (c *Client) send(ctx context.Context, auth bool, method, path string, header http.Header, body []byte) (*http.Response, error) {
	target := c.baseURL + path
	if auth {
		return c.gw.Request(ctx, target, gateway.RequestOptions{Method: method, Header: header, Body: body})
	}

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return nil, err
	}
	req.Header = header
	return c.plain.Do(req)
}

// upload posts a single file as the multipart field "file" and returns the URL the
// API stored it under.
func (c *Client) upload(ctx context.Context, path, filename string, file io.Reader) (string, error) {
	if filename == "" {
		return "", invalid("file name", "is required")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", apperrors.Wrapf(err, "creating upload")
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", apperrors.Wrapf(err, "reading %s", filename)
	}
	if err := mw.Close(); err != nil {
		return "", apperrors.Wrapf(err, "creating upload")
	}

	header := http.Header{
		"Accept":       {"application/json"},
		"Content-Type": {mw.FormDataContentType()},
	}
	resp, err := c.send(ctx, true, http.MethodPost, path, header, buf.Bytes())
	if err != nil {
		return "", apperrors.Wrapf(err, "POST %s", path)
	}
	defer resp.Body.Close()

	var location string
	if err := decode(resp, &location); err != nil {
		return "", apperrors.Wrapf(err, "POST %s", path)
	}
	return location, nil
}

func decode(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFrom(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

func errorFrom(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		apiErr.Message = env.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

func pathID(prefix string, id ID) string {
	return prefix + "/" + url.PathEscape(id.String())
}
