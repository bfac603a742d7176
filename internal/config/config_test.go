package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"github.com/yogarn/filkompedia-client/internal/config"
)

func newTestConfig(t *testing.T) (*viper.Viper, config.Config) {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	config.BindEnv(v)
	return v, config.New(v)
}

func TestDefaults(t *testing.T) {
	_, c := newTestConfig(t)

	require.Equal(t, "http://localhost:8080", c.GetBaseURL())
	require.Equal(t, 30*time.Second, c.GetTimeout())
	require.Equal(t, 10*time.Second, c.GetRefreshTimeout())
	require.Equal(t, "/login", c.GetLoginPath())
	require.Equal(t, "info", c.GetLogLevel())
	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, 15*time.Minute, c.GetAccessTokenTTL())
	require.Equal(t, 7*24*time.Hour, c.GetRefreshTokenTTL())
	require.Equal(t, 32, c.GetRefreshTokenLength())
	require.Equal(t, "admin", c.GetAdminUser())
	require.Equal(t, 30.0, c.GetAuthRatePerMinute())
	require.Equal(t, 10, c.GetAuthBurst())
	require.NotEmpty(t, c.GetStorePath())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("http://localhost:5173"))
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	v, c := newTestConfig(t)
	v.Set(config.KeyAPIBaseURL, "https://api.filkompedia.test/")

	require.Equal(t, "https://api.filkompedia.test", c.GetBaseURL())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("FILKOMPEDIA_GATEWAY_REFRESH_TIMEOUT", "3s")
	t.Setenv("FILKOMPEDIA_SERVER_PORT", ":9090")

	_, c := newTestConfig(t)

	require.Equal(t, 3*time.Second, c.GetRefreshTimeout())
	require.Equal(t, ":9090", c.GetPort())
}
