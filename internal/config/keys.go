package config

// Configuration keys. Nested keys map to FILKOMPEDIA_<SECTION>_<NAME> env vars.
const (
	KeyAPIBaseURL     = "api.base_url"
	KeyAPITimeout     = "api.timeout"
	KeyPaymentBaseURL = "api.payment_base_url"

	KeyRefreshTimeout = "gateway.refresh_timeout"
	KeyLoginPath      = "gateway.login_path"

	KeySessionStorePath = "session.store_path"

	KeyLogLevel = "log.level"

	KeyServerPort         = "server.port"
	KeyServerAppName      = "server.app_name"
	KeyServerEnv          = "server.env"
	KeyAccessTokenTTL     = "server.access_token_ttl"
	KeyRefreshTokenTTL    = "server.refresh_token_ttl"
	KeyJWTSecret          = "server.jwt_secret"
	KeyRefreshTokenLength = "server.refresh_token_length"
	KeyAllowedOrigins     = "server.allowed_origins"
	KeyAdminUser          = "server.admin_user"
	KeyAdminPassword      = "server.admin_password"
	KeyAuthRatePerMinute  = "server.auth_rate_per_minute"
	KeyAuthBurst          = "server.auth_burst"
)
