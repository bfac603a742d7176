package session_test

import (
	"net/http"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogarn/filkompedia-client/session"
	sessionrepofake "github.com/yogarn/filkompedia-client/session/repofake"
)

type jarFixture struct {
	repo  *sessionrepofake.FakeCookieRepo
	clock *clockwork.FakeClock
	api   *url.URL
}

func setupJarFixture(t *testing.T) *jarFixture {
	t.Helper()
	api, err := url.Parse("http://api.filkompedia.test/auths/login")
	require.NoError(t, err)
	return &jarFixture{
		repo:  sessionrepofake.NewFakeCookieRepo(),
		clock: clockwork.NewFakeClockAt(time.Now()),
		api:   api,
	}
}

func (f *jarFixture) open(t *testing.T) *session.Jar {
	t.Helper()
	jar, err := session.Open(f.repo, session.WithClock(f.clock), session.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return jar
}

func cookieValues(cookies []*http.Cookie) map[string]string {
	values := make(map[string]string, len(cookies))
	for _, c := range cookies {
		values[c.Name] = c.Value
	}
	return values
}

func TestJarPersistsCookies(t *testing.T) {
	f := setupJarFixture(t)
	jar := f.open(t)

	jar.SetCookies(f.api, []*http.Cookie{
		{Name: "access_token", Value: "a1", Path: "/", HttpOnly: true, MaxAge: 900},
		{Name: "refresh_token", Value: "r1", Path: "/"},
	})

	stored, err := f.repo.Load()
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "access_token", stored[0].Name)
	assert.Equal(t, "api.filkompedia.test", stored[0].Host)
	assert.True(t, stored[0].Expires.Equal(f.clock.Now().Add(900*time.Second)))
	assert.True(t, stored[1].Expires.IsZero())

	reopened := f.open(t)
	books, _ := url.Parse("http://api.filkompedia.test/books")
	assert.Equal(t, map[string]string{"access_token": "a1", "refresh_token": "r1"}, cookieValues(reopened.Cookies(books)))
}

func TestJarDeletesRemovedCookies(t *testing.T) {
	f := setupJarFixture(t)
	jar := f.open(t)

	jar.SetCookies(f.api, []*http.Cookie{{Name: "access_token", Value: "a1", Path: "/"}})
	jar.SetCookies(f.api, []*http.Cookie{{Name: "access_token", Path: "/", MaxAge: -1}})

	stored, err := f.repo.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Empty(t, jar.Cookies(f.api))
}

func TestOpenDropsExpiredCookies(t *testing.T) {
	f := setupJarFixture(t)
	jar := f.open(t)
	jar.SetCookies(f.api, []*http.Cookie{
		{Name: "access_token", Value: "a1", Path: "/", MaxAge: 60},
		{Name: "refresh_token", Value: "r1", Path: "/", MaxAge: 3600},
	})

	f.clock.Advance(10 * time.Minute)
	reopened := f.open(t)

	stored, err := f.repo.Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "refresh_token", stored[0].Name)
	assert.Equal(t, map[string]string{"refresh_token": "r1"}, cookieValues(reopened.Cookies(f.api)))
}

func TestJarClear(t *testing.T) {
	f := setupJarFixture(t)
	jar := f.open(t)
	other, _ := url.Parse("http://payments.test/")

	jar.SetCookies(f.api, []*http.Cookie{{Name: "access_token", Value: "a1", Path: "/"}})
	jar.SetCookies(other, []*http.Cookie{{Name: "sid", Value: "s1", Path: "/"}})

	require.NoError(t, jar.Clear(f.api))

	assert.Empty(t, jar.Cookies(f.api))
	assert.Equal(t, map[string]string{"sid": "s1"}, cookieValues(jar.Cookies(other)))
	stored, err := f.repo.Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "payments.test", stored[0].Host)
}

func TestJarOverSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cookies.db")
	repo, err := session.OpenSQLite(path)
	require.NoError(t, err)

	api, _ := url.Parse("http://localhost:8080/auths/login")
	jar, err := session.Open(repo, session.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	jar.SetCookies(api, []*http.Cookie{{Name: "access_token", Value: "a1", Path: "/", HttpOnly: true}})
	require.NoError(t, repo.Close())

	repo, err = session.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	jar, err = session.Open(repo, session.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	books, _ := url.Parse("http://localhost:8080/books")
	assert.Equal(t, map[string]string{"access_token": "a1"}, cookieValues(jar.Cookies(books)))
}
