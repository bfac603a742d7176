package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetRefreshTokenLength() int
	GetJWTSecret() string
	GetAdminUser() string
	GetAdminPassword() string
	GetAuthRatePerMinute() float64
	GetAuthBurst() int
}

type Server struct{ v *viper.Viper }

var _ ServerConfig = Server{}

// GetPort returns the listen address, always prefixed with ':'
func (s Server) GetPort() string {
	port := s.v.GetString(KeyServerPort)
	if port == "" || port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (s Server) GetAppName() string {
	return s.v.GetString(KeyServerAppName)
}

func (s Server) GetEnv() string {
	return s.v.GetString(KeyServerEnv)
}

func (s Server) GetAccessTokenTTL() time.Duration {
	return s.v.GetDuration(KeyAccessTokenTTL)
}

func (s Server) GetRefreshTokenTTL() time.Duration {
	return s.v.GetDuration(KeyRefreshTokenTTL)
}

func (s Server) GetRefreshTokenLength() int {
	return s.v.GetInt(KeyRefreshTokenLength) // bytes, 32 = 256 bits
}

// GetJWTSecret returns the HMAC key for access tokens. Empty means the server generates one at startup.
func (s Server) GetJWTSecret() string {
	return s.v.GetString(KeyJWTSecret)
}

func (s Server) GetAdminUser() string {
	return s.v.GetString(KeyAdminUser)
}

// GetAdminPassword returns the seeded admin's password. Empty means one is generated and logged.
func (s Server) GetAdminPassword() string {
	return s.v.GetString(KeyAdminPassword)
}

// GetAuthRatePerMinute bounds login and OTP attempts per client address.
func (s Server) GetAuthRatePerMinute() float64 {
	return s.v.GetFloat64(KeyAuthRatePerMinute)
}

func (s Server) GetAuthBurst() int {
	return s.v.GetInt(KeyAuthBurst)
}
