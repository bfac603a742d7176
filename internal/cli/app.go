// Package cli implements the filkompedia command line client.
package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yogarn/filkompedia-client/bookstore"
	"github.com/yogarn/filkompedia-client/gateway"
	"github.com/yogarn/filkompedia-client/internal/config"
	"github.com/yogarn/filkompedia-client/internal/logging"
	"github.com/yogarn/filkompedia-client/notify"
	"github.com/yogarn/filkompedia-client/session"
)

// SessionExpiredMessage is shown when the session could not be renewed.
const SessionExpiredMessage = "session expired, run `filkompedia login`"

// PasswordReader prompts for a secret without echoing it.
type PasswordReader func(prompt string) (string, error)

// App holds everything a command needs. The bookstore client is built once the
// configuration has been read, just before the command runs.
type App struct {
	v        *viper.Viper
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	notifier notify.Notifier
	password PasswordReader

	cfg      config.Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	client   *bookstore.Client
	closers  []func() error
}

type Option func(*App)

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *App) {
		a.in, a.out, a.errOut = in, out, errOut
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(a *App) { a.notifier = n }
}

func WithPasswordReader(p PasswordReader) Option {
	return func(a *App) { a.password = p }
}

// WithViper reads configuration from v instead of a fresh instance.
func WithViper(v *viper.Viper) Option {
	return func(a *App) { a.v = v }
}

func New(opts ...Option) *App {
	a := &App{
		v:      viper.New(),
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.notifier == nil {
		a.notifier = notify.NewConsole(a.errOut)
	}
	if a.password == nil {
		a.password = a.promptPassword
	}
	return a
}

// Run executes the command line args, reports a failure through the notifier and
// releases the session store.
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.Command()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.notifier.Error(err.Error())
	}
	return errors.Join(err, a.Close())
}

// Close releases the cookie database.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) initConfig(cmd *cobra.Command) error {
	config.SetDefaults(a.v)
	config.BindEnv(a.v)

	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		config.KeyAPIBaseURL:       "api-url",
		config.KeySessionStorePath: "store",
		config.KeyLogLevel:         "log-level",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	if file, _ := flags.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
	} else {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(config.ConfigDir())
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	a.cfg = config.New(a.v)
	a.logger = logging.Setup(a.cfg.GetLogLevel(), a.errOut)
	return nil
}

// connect builds the cookie jar, the gateway and the bookstore client.
func (a *App) connect() error {
	repo, err := session.OpenSQLite(a.cfg.GetStorePath())
	if err != nil {
		return err
	}
	a.closers = append(a.closers, repo.Close)

	jar, err := session.Open(repo, session.WithLogger(a.logger))
	if err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	gw, err := gateway.New(a.cfg.GetBaseURL(),
		gateway.WithHTTPClient(&http.Client{Jar: jar, Timeout: a.cfg.GetTimeout()}),
		gateway.WithNavigator(gateway.NavigatorFunc(func(context.Context, string) {
			a.notifier.Error(SessionExpiredMessage)
		})),
		gateway.WithLoginPath(a.cfg.GetLoginPath()),
		gateway.WithRefreshTimeout(a.cfg.GetRefreshTimeout()),
		gateway.WithMetrics(gateway.NewMetrics(a.registry)),
		gateway.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	a.client, err = bookstore.New(a.cfg.GetBaseURL(), gw,
		bookstore.WithPaymentBaseURL(a.cfg.GetPaymentBaseURL()),
		bookstore.WithSessionStore(jar),
		bookstore.WithLogger(a.logger),
	)
	return err
}

// writeStats prints the gateway counters in the prometheus text format.
func (a *App) writeStats() error {
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "filkompedia_gateway_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(a.errOut, mf); err != nil {
			return err
		}
	}
	return nil
}
