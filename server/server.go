package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yogarn/filkompedia-client/auth"
	"github.com/yogarn/filkompedia-client/catalog"
	"github.com/yogarn/filkompedia-client/internal/config"
	"github.com/yogarn/filkompedia-client/token"
	"github.com/yogarn/filkompedia-client/token/refresh"
	"github.com/yogarn/filkompedia-client/users"
)

// Repos holds the storage the server runs on
type Repos struct {
	Users         users.UserRepo
	RefreshTokens refresh.Repo
	Catalog       *catalog.Store
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	auth     *auth.Service
	repos    Repos
	uploads  *uploadStore
	limiter  *clientLimiter
	registry *prometheus.Registry
	metrics  *serverMetrics
	clock    clockwork.Clock
	logger   zerolog.Logger
}

type Option func(*Server)

// WithClock sets the clock that stamps and verifies tokens (primarily for testing)
func WithClock(clock clockwork.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry registers the server's metrics on registry, which /metrics then serves.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = registry
	}
}

func New(config config.Config, repos Repos, options ...Option) (*Server, error) {
	if repos.Users == nil || repos.RefreshTokens == nil || repos.Catalog == nil {
		return nil, fmt.Errorf("[Server New] users, refresh token and catalog repos are required")
	}

	s := &Server{
		env:     config.GetEnv(),
		mux:     http.NewServeMux(),
		config:  config,
		repos:   repos,
		uploads: newUploadStore(),
		clock:   clockwork.NewRealClock(),
		logger:  log.Logger,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	metrics, err := newServerMetrics(s.registry)
	if err != nil {
		return nil, fmt.Errorf("[Server New] registering metrics: %w", err)
	}
	s.metrics = metrics
	s.limiter = newClientLimiter(config.GetAuthRatePerMinute(), config.GetAuthBurst(), s.clock)

	secret := config.GetJWTSecret()
	if secret == "" {
		if secret, err = token.GenerateSecret(32); err != nil {
			return nil, fmt.Errorf("[Server New] %w", err)
		}
	}
	issuer := token.NewIssuer(token.NewHMACSigner(secret), config.GetAccessTokenTTL(), token.WithClock(s.clock))
	manager := refresh.NewManager(repos.RefreshTokens, config, refresh.WithClock(s.clock))

	s.auth, err = auth.NewService(repos.Users, issuer, manager, auth.WithClock(s.clock), auth.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}

	if err := s.InitialiseSystem(config); err != nil {
		return nil, fmt.Errorf("[Server New] Failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			s.logRoute(parts[0], parts[1], 0)
		} else {
			s.logRoute("", parts[0], 0)
		}
	}
}

// logRoute prints a coloured method badge and the path; status is omitted when zero.
func (s *Server) logRoute(method, path string, status int) {
	event := s.logger.Info().Str("method", methodBadge(method))
	if status != 0 {
		event = event.Int("status", status)
	}
	event.Msg(path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
