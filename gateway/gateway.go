// Package gateway sends authenticated requests to the bookstore API.
//
// Every request carries the session cookies held by the gateway's cookie jar. A 401
// on a first attempt joins the single pending session renewal (starting one if none
// is in flight) and, once that renewal settles, the request is sent exactly once more.
// The retry's response is handed back as is, whatever its status.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"
)

const (
	// RefreshPath is the renewal endpoint, relative to the API base URL.
	RefreshPath = "/auths/refresh"
	// DefaultLoginPath is where the navigator is pointed when renewal fails.
	DefaultLoginPath = "/login"
	// DefaultRefreshTimeout bounds a single renewal call.
	DefaultRefreshTimeout = 10 * time.Second
	// RequestIDHeader carries a per-request id that is kept on the retry.
	RequestIDHeader = "X-Request-ID"

	defaultTimeout = 30 * time.Second
	refreshKey     = "session"
	drainLimit     = 4 << 10
)

type attempt int

const (
	attemptFirst attempt = iota
	attemptRetry
)

func (a attempt) String() string {
	if a == attemptRetry {
		return "retry"
	}
	return "first"
}

// RequestOptions describes a request built by Gateway.Request.
type RequestOptions struct {
	Method string
	Header http.Header
	Body   []byte
}

// Gateway is safe for concurrent use. Gateways never share renewal state with each
// other, so two gateways against the same API renew independently.
type Gateway struct {
	client         *http.Client
	refreshURL     string
	loginPath      string
	refreshTimeout time.Duration
	navigator      Navigator
	metrics        *Metrics
	logger         zerolog.Logger

	renewal singleflight.Group
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient sets the client used for every send. A client without a cookie
// jar gets one.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		if c != nil {
			g.client = c
		}
	}
}

// WithNavigator sets where the user is sent when a renewal fails.
func WithNavigator(n Navigator) Option {
	return func(g *Gateway) {
		if n != nil {
			g.navigator = n
		}
	}
}

// WithLoginPath overrides DefaultLoginPath.
func WithLoginPath(path string) Option {
	return func(g *Gateway) {
		if path != "" {
			g.loginPath = path
		}
	}
}

// WithRefreshTimeout overrides DefaultRefreshTimeout.
func WithRefreshTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.refreshTimeout = d
		}
	}
}

// WithMetrics records gateway traffic on m.
func WithMetrics(m *Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// WithLogger replaces the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// New creates a gateway for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Gateway, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}

	g := &Gateway{
		client:         &http.Client{Timeout: defaultTimeout},
		refreshURL:     baseURL + RefreshPath,
		loginPath:      DefaultLoginPath,
		refreshTimeout: DefaultRefreshTimeout,
		navigator:      nopNavigator{},
		logger:         log.Logger,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.client.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("gateway: creating cookie jar: %w", err)
		}
		c := *g.client
		c.Jar = jar
		g.client = &c
	}
	return g, nil
}

// HTTPClient returns the client whose jar holds the session cookies.
func (g *Gateway) HTTPClient() *http.Client {
	return g.client
}

// Request builds a request for target and sends it through Do. Method defaults to GET.
func (g *Gateway) Request(ctx context.Context, target string, opts RequestOptions) (*http.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: building request: %w", err)
	}
	for key, values := range opts.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return g.Do(req)
}

// Do sends req and returns the response to hand back to the caller. Non-401
// responses and transport errors from the first attempt are returned unchanged.
// A 401 waits for the session renewal and then replays req once, even when the
// renewal failed. Cancelling req's context while waiting returns the context error
// without affecting the renewal or other waiters. req's headers are never modified;
// its body is read only when req has no GetBody to replay it from.
func (g *Gateway) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	tmpl, err := prepare(req)
	if err != nil {
		return nil, err
	}

	state := attemptFirst
	for {
		current, err := instance(tmpl)
		if err != nil {
			return nil, err
		}
		resp, err := g.send(current, state)
		if err != nil || state == attemptRetry || resp.StatusCode != http.StatusUnauthorized {
			return resp, err
		}
		drain(resp)

		if err := g.awaitRenewal(ctx); err != nil {
			g.logger.Debug().
				Err(err).
				Str("request_id", tmpl.Header.Get(RequestIDHeader)).
				Msg("renewal did not succeed, retrying anyway")
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state = attemptRetry
		g.metrics.retried()
	}
}

func (g *Gateway) send(req *http.Request, a attempt) (*http.Response, error) {
	ev := g.logger.Debug().
		Str("request_id", req.Header.Get(RequestIDHeader)).
		Str("method", req.Method).
		Str("url", req.URL.Redacted()).
		Stringer("attempt", a)

	resp, err := g.client.Do(req)
	if err != nil {
		g.metrics.request(outcomeError)
		ev.Err(err).Msg("send failed")
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		g.metrics.request(outcomeUnauthorized)
	} else {
		g.metrics.request(outcomeOK)
	}
	ev.Int("status", resp.StatusCode).Msg("sent")
	return resp, nil
}

// awaitRenewal joins the pending renewal, starting one when none is in flight. The
// renewal itself is detached from ctx; only this caller's wait observes ctx.
func (g *Gateway) awaitRenewal(ctx context.Context) error {
	detached := context.WithoutCancel(ctx)
	ch := g.renewal.DoChan(refreshKey, func() (any, error) {
		return nil, g.refresh(detached)
	})
	g.metrics.waited()

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Gateway) refresh(ctx context.Context) error {
	start := time.Now()
	g.logger.Info().Msg("session expired, renewing")

	err := g.postRefresh(ctx)
	g.metrics.refreshed(err, time.Since(start))
	if err != nil {
		g.logger.Warn().Err(err).Str("redirect", g.loginPath).Msg("session renewal failed")
		g.navigator.Navigate(ctx, g.loginPath)
		return err
	}

	g.logger.Info().Dur("took", time.Since(start)).Msg("session renewed")
	return nil
}

func (g *Gateway) postRefresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.refreshTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.refreshURL, nil)
	if err != nil {
		return &RefreshError{Err: err}
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return &RefreshError{Err: err}
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejected(resp.StatusCode)
	}
	return nil
}

// prepare returns a template of req that carries a request id and a replayable
// body. The template itself is never sent: the client adds jar cookies to the
// request it sends, so each attempt goes out on a fresh instance.
func prepare(req *http.Request) (*http.Request, error) {
	tmpl := req.Clone(req.Context())

	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		buf, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("gateway: buffering request body: %w", err)
		}
		tmpl.ContentLength = int64(len(buf))
		tmpl.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(buf)), nil
		}
	}
	if tmpl.GetBody != nil {
		tmpl.Body = nil
	}

	if tmpl.Header.Get(RequestIDHeader) == "" {
		tmpl.Header.Set(RequestIDHeader, ulid.Make().String())
	}
	return tmpl, nil
}

// instance clones tmpl with its own headers and a fresh body.
func instance(tmpl *http.Request) (*http.Request, error) {
	out := tmpl.Clone(tmpl.Context())
	if tmpl.GetBody != nil {
		body, err := tmpl.GetBody()
		if err != nil {
			return nil, fmt.Errorf("gateway: replaying request body: %w", err)
		}
		out.Body = body
	}
	return out, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
	_ = resp.Body.Close()
}
