package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type APIConfig interface {
	GetBaseURL() string
	GetTimeout() time.Duration
	GetPaymentBaseURL() string
}

type GatewayConfig interface {
	GetRefreshTimeout() time.Duration
	GetLoginPath() string
}

type SessionConfig interface {
	GetStorePath() string
}

type LoggingConfig interface {
	GetLogLevel() string
}

type API struct{ v *viper.Viper }

var _ APIConfig = API{}

// GetBaseURL returns the API root without a trailing slash, e.g. "http://localhost:8080"
func (a API) GetBaseURL() string {
	return strings.TrimRight(a.v.GetString(KeyAPIBaseURL), "/")
}

func (a API) GetTimeout() time.Duration {
	return a.v.GetDuration(KeyAPITimeout)
}

func (a API) GetPaymentBaseURL() string {
	return strings.TrimRight(a.v.GetString(KeyPaymentBaseURL), "/")
}

type Gateway struct{ v *viper.Viper }

var _ GatewayConfig = Gateway{}

func (g Gateway) GetRefreshTimeout() time.Duration {
	return g.v.GetDuration(KeyRefreshTimeout)
}

func (g Gateway) GetLoginPath() string {
	return g.v.GetString(KeyLoginPath)
}

type Session struct{ v *viper.Viper }

var _ SessionConfig = Session{}

func (s Session) GetStorePath() string {
	return s.v.GetString(KeySessionStorePath)
}

type Logging struct{ v *viper.Viper }

var _ LoggingConfig = Logging{}

func (l Logging) GetLogLevel() string {
	return l.v.GetString(KeyLogLevel)
}

// ConfigDir is where the config file and the cookie database live.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "filkompedia")
	}
	return ".filkompedia"
}

func defaultStorePath() string {
	return filepath.Join(ConfigDir(), "cookies.db")
}
