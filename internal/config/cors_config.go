package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Cors struct{ v *viper.Viper }

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	for _, o := range c.v.GetStringSlice(KeyAllowedOrigins) {
		origins[o] = nullValue{}
	}
	return origins
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PUT, PATCH, DELETE"
}

// Credentialed requests need the origin echoed back, never "*"
func (Cors) GetAllowedHeaders() string {
	return "Content-Type, X-Request-ID"
}
