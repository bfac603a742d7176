package cli_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogarn/filkompedia-client/catalog"
	"github.com/yogarn/filkompedia-client/internal/cli"
	"github.com/yogarn/filkompedia-client/internal/config"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
	"github.com/yogarn/filkompedia-client/notify"
	"github.com/yogarn/filkompedia-client/server"
	refreshrepofake "github.com/yogarn/filkompedia-client/token/refresh/repofake"
	"github.com/yogarn/filkompedia-client/users"
	fakeuserrepo "github.com/yogarn/filkompedia-client/users/repofake"
)

const (
	adminEmail    = "admin@localhost"
	adminPassword = "admin-password"
	customerEmail = "budi@example.com"
	customerPass  = "password123"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testFixture struct {
	server    *httptest.Server
	clock     *clockwork.FakeClock
	storePath string
	logs      *lockedBuffer
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	v := viper.New()
	config.SetDefaults(v)
	v.Set(config.KeyAccessTokenTTL, "1m")
	v.Set(config.KeyRefreshTokenTTL, "1h")
	v.Set(config.KeyAdminPassword, adminPassword)

	f := &testFixture{
		clock:     clockwork.NewFakeClockAt(time.Now()),
		storePath: filepath.Join(t.TempDir(), "cookies.db"),
		logs:      &lockedBuffer{},
	}

	userRepo := fakeuserrepo.NewFakeUserRepo()
	hash, err := users.HashPassword(customerPass)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(&users.User{
		Email:        customerEmail,
		Username:     "budi",
		PasswordHash: hash,
		RoleID:       users.RoleCustomer,
		Verified:     true,
	}))

	srv, err := server.New(config.New(v), server.Repos{
		Users:         userRepo,
		RefreshTokens: refreshrepofake.NewFakeRefreshTokenRepo(),
		Catalog:       catalog.NewStore(f.clock),
	},
		server.WithClock(f.clock),
		server.WithRegistry(prometheus.NewRegistry()),
		server.WithLogger(zerolog.New(f.logs)),
	)
	require.NoError(t, err)

	f.server = httptest.NewServer(srv)
	t.Cleanup(f.server.Close)
	return f
}

type result struct {
	out      string
	errOut   string
	messages []notify.Message
	err      error
}

func (r result) notified(level notify.Level, text string) bool {
	for _, m := range r.messages {
		if m.Level == level && strings.Contains(m.Text, text) {
			return true
		}
	}
	return false
}

// run executes one CLI invocation against the fixture, sharing the cookie database
// with every other invocation of the test.
func (f *testFixture) run(t *testing.T, args ...string) result {
	t.Helper()

	v := viper.New()
	v.Set(config.KeyAPIBaseURL, f.server.URL)
	v.Set(config.KeySessionStorePath, f.storePath)
	v.Set(config.KeyLogLevel, "error")
	v.Set(config.KeyPaymentBaseURL, "https://pay.test/redirection")

	var out, errOut bytes.Buffer
	rec := &notify.Recorder{}
	app := cli.New(
		cli.WithViper(v),
		cli.WithIO(strings.NewReader(""), &out, &errOut),
		cli.WithNotifier(rec),
		cli.WithPasswordReader(func(string) (string, error) { return customerPass, nil }),
	)
	err := app.Run(context.Background(), args)
	return result{out: out.String(), errOut: errOut.String(), messages: rec.Messages(), err: err}
}

func (f *testFixture) login(t *testing.T, email, password string) {
	t.Helper()
	res := f.run(t, "login", email, "--password", password)
	require.NoError(t, res.err)
}

func TestLoginAndBrowse(t *testing.T) {
	f := setupTestFixture(t)

	res := f.run(t, "login", adminEmail, "--password", adminPassword)
	require.NoError(t, res.err)
	require.True(t, res.notified(notify.LevelSuccess, "Logged in as admin"))

	res = f.run(t, "books", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Laskar Pelangi")
	assert.Contains(t, res.out, "Rp89000")

	res = f.run(t, "books", "list", "--search", "pramoedya")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Bumi Manusia")
	assert.NotContains(t, res.out, "Laskar Pelangi")

	res = f.run(t, "books", "show", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Andrea Hirata")
	assert.NotContains(t, res.out, "You own this book")
}

func TestLoginPromptsForPassword(t *testing.T) {
	f := setupTestFixture(t)

	res := f.run(t, "login", customerEmail)
	require.NoError(t, res.err)
	require.True(t, res.notified(notify.LevelSuccess, "Logged in as budi"))
}

func TestLoginFailureIsNotified(t *testing.T) {
	f := setupTestFixture(t)

	res := f.run(t, "login", customerEmail, "--password", "wrong-password")
	require.ErrorIs(t, res.err, apperrors.ErrUnauthenticated)
	require.True(t, res.notified(notify.LevelError, "401"))
}

func TestShoppingCommands(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, customerEmail, customerPass)

	res := f.run(t, "cart", "list")
	require.NoError(t, res.err)
	require.True(t, res.notified(notify.LevelInfo, "Your cart is empty"))

	res = f.run(t, "cart", "add", "1", "-n", "2")
	require.NoError(t, res.err)
	require.True(t, res.notified(notify.LevelSuccess, "Added to cart"))

	res = f.run(t, "cart", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Laskar Pelangi")
	assert.Contains(t, res.out, "total Rp178000")

	res = f.run(t, "cart", "set", "1", "0")
	require.ErrorIs(t, res.err, apperrors.ErrInvalidInput)

	res = f.run(t, "cart", "checkout")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "pay at https://pay.test/redirection/")
	assert.Contains(t, res.out, "#/payment-list")

	res = f.run(t, "checkouts")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Laskar Pelangi x2")
	assert.Contains(t, res.out, "waiting for payment")

	res = f.run(t, "comments", "add", "1", "a lovely story")
	require.ErrorIs(t, res.err, apperrors.ErrForbidden)
}

func TestSessionRenewedAcrossRuns(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, customerEmail, customerPass)

	f.clock.Advance(2 * time.Minute)

	res := f.run(t, "profile", "show", "--stats")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, customerEmail)
	assert.Contains(t, res.errOut, `filkompedia_gateway_refresh_total{result="success"} 1`)
	assert.Contains(t, res.errOut, "filkompedia_gateway_retries_total 1")
	require.False(t, res.notified(notify.LevelError, cli.SessionExpiredMessage))

	// the renewed cookies were persisted
	res = f.run(t, "profile", "show", "--stats")
	require.NoError(t, res.err)
	assert.NotContains(t, res.errOut, "filkompedia_gateway_refresh_total")
}

func TestExpiredSessionAsksToLogin(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, customerEmail, customerPass)

	f.clock.Advance(2 * time.Hour)

	res := f.run(t, "profile", "show")
	require.ErrorIs(t, res.err, apperrors.ErrUnauthenticated)
	require.True(t, res.notified(notify.LevelError, cli.SessionExpiredMessage))
}

func TestLogout(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, customerEmail, customerPass)

	res := f.run(t, "logout")
	require.NoError(t, res.err)
	require.True(t, res.notified(notify.LevelSuccess, "Logged out"))

	res = f.run(t, "profile", "show")
	require.ErrorIs(t, res.err, apperrors.ErrUnauthenticated)
}

func TestProfileCommands(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, customerEmail, customerPass)

	res := f.run(t, "profile", "update", "--username", "budi2")
	require.NoError(t, res.err)

	picture := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(picture, []byte("png bytes"), 0o600))
	res = f.run(t, "profile", "picture", picture)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "/uploads/")

	res = f.run(t, "profile", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "budi2")
	assert.Contains(t, res.out, "picture: "+f.server.URL+"/uploads/")

	res = f.run(t, "profile", "delete")
	require.Error(t, res.err)

	res = f.run(t, "profile", "delete", "--yes")
	require.NoError(t, res.err)

	res = f.run(t, "login", customerEmail, "--password", customerPass)
	require.Error(t, res.err)
}

func TestAdminCommands(t *testing.T) {
	f := setupTestFixture(t)

	f.login(t, customerEmail, customerPass)
	res := f.run(t, "admin", "books", "create", "--title", "Negeri 5 Menara", "--price", "75000")
	require.ErrorIs(t, res.err, apperrors.ErrForbidden)

	f.login(t, adminEmail, adminPassword)

	cover := filepath.Join(t.TempDir(), "cover.jpg")
	require.NoError(t, os.WriteFile(cover, []byte("jpeg bytes"), 0o600))

	res = f.run(t, "admin", "books", "create",
		"--title", "Negeri 5 Menara", "--author", "Ahmad Fuadi", "--price", "75000", "--cover", cover)
	require.NoError(t, res.err)
	require.True(t, res.notified(notify.LevelSuccess, "Created book #5"))

	res = f.run(t, "admin", "books", "update", "5", "--price", "70000")
	require.NoError(t, res.err)

	res = f.run(t, "books", "show", "5")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Ahmad Fuadi")
	assert.Contains(t, res.out, "Rp70000")
	assert.Contains(t, res.out, "cover:    "+f.server.URL+"/uploads/")

	res = f.run(t, "admin", "books", "delete", "5")
	require.NoError(t, res.err)
	res = f.run(t, "books", "show", "5")
	require.ErrorIs(t, res.err, apperrors.ErrNotFound)

	res = f.run(t, "admin", "users", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, customerEmail)
	assert.Contains(t, res.out, "customer")

	res = f.run(t, "admin", "users", "role", "1", "superuser")
	require.Error(t, res.err)

	res = f.run(t, "admin", "users", "role", "1", "admin")
	require.NoError(t, res.err)

	f.login(t, customerEmail, customerPass)
	res = f.run(t, "admin", "users", "list")
	require.NoError(t, res.err)
}

func TestRegisterAndVerifyCommands(t *testing.T) {
	f := setupTestFixture(t)
	const email = "siti@example.com"

	res := f.run(t, "register", "siti", email)
	require.NoError(t, res.err)
	require.True(t, res.notified(notify.LevelInfo, "verify-otp "+email))

	res = f.run(t, "login", email, "--password", customerPass)
	require.ErrorIs(t, res.err, apperrors.ErrForbidden)

	res = f.run(t, "verify-otp", email, "12345")
	require.ErrorIs(t, res.err, apperrors.ErrInvalidInput)

	res = f.run(t, "resend-otp", email)
	require.NoError(t, res.err)

	code := latestOTP(t, f.logs.String(), email)
	res = f.run(t, "verify-otp", email, code)
	require.NoError(t, res.err)

	f.login(t, email, customerPass)
}

func latestOTP(t *testing.T, logs, email string) string {
	t.Helper()
	var code string
	for _, line := range strings.Split(logs, "\n") {
		if !strings.Contains(line, `"email":"`+email+`"`) {
			continue
		}
		if i := strings.Index(line, `"otp":"`); i >= 0 {
			code = line[i+len(`"otp":"`) : i+len(`"otp":"`)+6]
		}
	}
	require.Len(t, code, 6)
	return code
}
