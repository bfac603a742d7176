// Package session keeps the client's session cookies, persisting every cookie the
// API sets so later runs start with the same session.
package session

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"

	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

var _ http.CookieJar = (*Jar)(nil)

// Jar is an http.CookieJar that writes through to a Repo.
type Jar struct {
	repo   Repo
	clock  clockwork.Clock
	logger zerolog.Logger

	mu  sync.RWMutex
	jar *cookiejar.Jar
}

type Option func(*Jar)

func WithClock(c clockwork.Clock) Option {
	return func(j *Jar) { j.clock = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(j *Jar) { j.logger = l }
}

// Open builds a jar seeded with the unexpired cookies in repo. Expired cookies are
// removed from repo.
func Open(repo Repo, opts ...Option) (*Jar, error) {
	j := &Jar{
		repo:   repo,
		clock:  clockwork.NewRealClock(),
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(j)
	}
	if err := j.reload(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Jar) reload() error {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return apperrors.Wrapf(err, "creating cookie jar")
	}

	stored, err := j.repo.Load()
	if err != nil {
		return err
	}
	now := j.clock.Now()
	for _, c := range stored {
		if c.Expired(now) {
			if err := j.repo.Delete(c.Host, c.Name, c.Path); err != nil {
				return err
			}
			continue
		}
		u, err := url.Parse(c.URL)
		if err != nil {
			j.logger.Warn().Err(err).Str("cookie", c.Name).Msg("skipping stored cookie with bad url")
			continue
		}
		jar.SetCookies(u, []*http.Cookie{toHTTP(c)})
	}

	j.mu.Lock()
	j.jar = jar
	j.mu.Unlock()
	return nil
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.jar.Cookies(u)
}

// SetCookies stores cookies in memory and persists them. A persistence failure is
// logged; the in-memory session keeps working.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	j.jar.SetCookies(u, cookies)
	j.mu.RUnlock()

	now := j.clock.Now()
	for _, hc := range cookies {
		c := fromHTTP(u, hc, now)
		var err error
		if hc.MaxAge < 0 || c.Expired(now) {
			err = j.repo.Delete(c.Host, c.Name, c.Path)
		} else {
			err = j.repo.Save(c)
		}
		if err != nil {
			j.logger.Warn().Err(err).Str("cookie", hc.Name).Msg("persisting cookie")
		}
	}
}

// Clear forgets every cookie received from u's host, in memory and on disk.
func (j *Jar) Clear(u *url.URL) error {
	if err := j.repo.Clear(u.Hostname()); err != nil {
		return err
	}
	return j.reload()
}

func fromHTTP(u *url.URL, hc *http.Cookie, now time.Time) Cookie {
	c := Cookie{
		URL:      (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}).String(),
		Host:     u.Hostname(),
		Name:     hc.Name,
		Value:    hc.Value,
		Domain:   hc.Domain,
		Path:     hc.Path,
		Secure:   hc.Secure,
		HttpOnly: hc.HttpOnly,
	}
	switch {
	case hc.MaxAge > 0:
		c.Expires = now.Add(time.Duration(hc.MaxAge) * time.Second)
	case !hc.Expires.IsZero():
		c.Expires = hc.Expires
	}
	return c
}

func toHTTP(c Cookie) *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Expires:  c.Expires,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
}
