package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config interface {
	APIConfig
	GatewayConfig
	SessionConfig
	LoggingConfig
	ServerConfig
	CorsConfig
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// EnvPrefix is prepended to every environment variable, e.g. FILKOMPEDIA_API_BASE_URL
const EnvPrefix = "FILKOMPEDIA"

type mainConfig struct {
	API
	Gateway
	Session
	Logging
	Server
	Cors
}

// New returns a Config reading from v. Defaults must already be registered with SetDefaults.
func New(v *viper.Viper) Config {
	return mainConfig{
		API:     API{v: v},
		Gateway: Gateway{v: v},
		Session: Session{v: v},
		Logging: Logging{v: v},
		Server:  Server{v: v},
		Cors:    Cors{v: v},
	}
}

// Default builds a Config from defaults and FILKOMPEDIA_* environment variables only.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return New(v)
}

// BindEnv makes every key overridable from the environment; dots become underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIBaseURL, "http://localhost:8080")
	v.SetDefault(KeyAPITimeout, "30s")
	v.SetDefault(KeyPaymentBaseURL, "https://app.sandbox.midtrans.com/snap/v4/redirection")

	v.SetDefault(KeyRefreshTimeout, "10s")
	v.SetDefault(KeyLoginPath, "/login")

	v.SetDefault(KeySessionStorePath, defaultStorePath())

	v.SetDefault(KeyLogLevel, "info")

	v.SetDefault(KeyServerPort, "8080")
	v.SetDefault(KeyServerAppName, "FilkomPedia")
	v.SetDefault(KeyServerEnv, "DEV")
	v.SetDefault(KeyAccessTokenTTL, "15m")
	v.SetDefault(KeyRefreshTokenTTL, "168h")
	v.SetDefault(KeyJWTSecret, "")
	v.SetDefault(KeyRefreshTokenLength, 32)
	v.SetDefault(KeyAllowedOrigins, []string{"http://localhost:5173"})
	v.SetDefault(KeyAdminUser, "admin")
	v.SetDefault(KeyAdminPassword, "")
	v.SetDefault(KeyAuthRatePerMinute, 30)
	v.SetDefault(KeyAuthBurst, 10)
}
