package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/yogarn/filkompedia-client/bookstore"
	"github.com/yogarn/filkompedia-client/catalog"
	"github.com/yogarn/filkompedia-client/gateway"
	"github.com/yogarn/filkompedia-client/internal/config"
	"github.com/yogarn/filkompedia-client/server"
	"github.com/yogarn/filkompedia-client/session"
	sessionrepofake "github.com/yogarn/filkompedia-client/session/repofake"
	refreshrepofake "github.com/yogarn/filkompedia-client/token/refresh/repofake"
	"github.com/yogarn/filkompedia-client/users"
	fakeuserrepo "github.com/yogarn/filkompedia-client/users/repofake"
)

const (
	adminEmail       = "admin@localhost"
	adminPassword    = "admin-password"
	testUserEmail    = "john.doe@example.com"
	testUserPassword = "password123"
)

// syncBuffer is a log sink safe for concurrent handlers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testFixture holds a running server and its dependencies
type testFixture struct {
	server   *httptest.Server
	clock    *clockwork.FakeClock
	registry *prometheus.Registry
	userRepo *fakeuserrepo.FakeUserRepo
	store    *catalog.Store
	logs     *syncBuffer
}

func setupTestFixture(t *testing.T, configure ...func(v *viper.Viper)) *testFixture {
	t.Helper()

	v := viper.New()
	config.SetDefaults(v)
	v.Set(config.KeyAccessTokenTTL, "1m")
	v.Set(config.KeyRefreshTokenTTL, "1h")
	v.Set(config.KeyAdminPassword, adminPassword)
	v.Set(config.KeyPaymentBaseURL, "https://pay.test/redirection")
	for _, c := range configure {
		c(v)
	}

	f := &testFixture{
		clock:    clockwork.NewFakeClockAt(time.Now()),
		registry: prometheus.NewRegistry(),
		userRepo: fakeuserrepo.NewFakeUserRepo(),
		logs:     &syncBuffer{},
	}
	f.store = catalog.NewStore(f.clock)

	srv, err := server.New(config.New(v), server.Repos{
		Users:         f.userRepo,
		RefreshTokens: refreshrepofake.NewFakeRefreshTokenRepo(),
		Catalog:       f.store,
	},
		server.WithClock(f.clock),
		server.WithRegistry(f.registry),
		server.WithLogger(zerolog.New(f.logs)),
	)
	require.NoError(t, err)

	f.server = httptest.NewServer(srv)
	t.Cleanup(f.server.Close)
	return f
}

// createUser stores a verified customer directly in the repo
func (f *testFixture) createUser(t *testing.T, email string) *users.User {
	t.Helper()
	hash, err := users.HashPassword(testUserPassword)
	require.NoError(t, err)

	user := &users.User{
		Email:        email,
		Username:     strings.Split(email, "@")[0],
		PasswordHash: hash,
		RoleID:       users.RoleCustomer,
		Verified:     true,
	}
	require.NoError(t, f.userRepo.Create(user))
	return user
}

type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (n *navRecorder) Navigate(_ context.Context, path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *navRecorder) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

type apiClient struct {
	*bookstore.Client
	jar *session.Jar
	nav *navRecorder
}

// newClient builds the real client stack against the fixture's server
func (f *testFixture) newClient(t *testing.T) *apiClient {
	t.Helper()
	jar, err := session.Open(sessionrepofake.NewFakeCookieRepo(), session.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	nav := &navRecorder{}
	gw, err := gateway.New(f.server.URL,
		gateway.WithHTTPClient(&http.Client{Jar: jar, Timeout: 10 * time.Second}),
		gateway.WithNavigator(nav),
		gateway.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)

	c, err := bookstore.New(f.server.URL, gw,
		bookstore.WithSessionStore(jar),
		bookstore.WithLogger(zerolog.Nop()),
		bookstore.WithPaymentBaseURL("https://pay.test/redirection"),
	)
	require.NoError(t, err)
	return &apiClient{Client: c, jar: jar, nav: nav}
}

func (f *testFixture) loggedIn(t *testing.T, email, password string) *apiClient {
	t.Helper()
	c := f.newClient(t)
	require.NoError(t, c.Login(context.Background(), email, password))
	return c
}

func (c *apiClient) cookie(t *testing.T, baseURL, name string) string {
	t.Helper()
	u, err := url.Parse(baseURL)
	require.NoError(t, err)
	for _, ck := range c.jar.Cookies(u) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

func postJSON(t *testing.T, target string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func message(t *testing.T, resp *http.Response) string {
	t.Helper()
	var env struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env.Message
}

func responseCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
