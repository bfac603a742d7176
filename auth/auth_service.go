package auth

import (
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
	"github.com/yogarn/filkompedia-client/token"
	"github.com/yogarn/filkompedia-client/token/refresh"
	"github.com/yogarn/filkompedia-client/users"
)

// Session is what a successful login or refresh hands to the client as cookies.
type Session struct {
	User          *users.User
	AccessToken   string
	AccessExpires time.Time
	RefreshToken  string
}

// Service implements registration, login and cookie session renewal.
type Service struct {
	users   users.UserRepo
	access  *token.Issuer
	refresh *refresh.Manager
	otps    *OTPStore
	clock   clockwork.Clock
	logger  zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithClock sets the clock used for login stamps and OTP expiry (primarily for testing)
func WithClock(clock clockwork.Clock) ServiceOption {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService initializes a Service with required dependencies.
func NewService(userRepo users.UserRepo, access *token.Issuer, refreshManager *refresh.Manager, options ...ServiceOption) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if access == nil {
		return nil, errors.New("[NewService] access token issuer is required")
	}
	if refreshManager == nil {
		return nil, errors.New("[NewService] refresh token manager is required")
	}

	s := &Service{
		users:   userRepo,
		access:  access,
		refresh: refreshManager,
		clock:   clockwork.NewRealClock(),
		logger:  log.Logger,
	}
	for _, opt := range options {
		opt(s)
	}
	s.otps = NewOTPStore(s.clock)
	return s, nil
}

func (s *Service) AccessTTL() time.Duration  { return s.access.TTL() }
func (s *Service) RefreshTTL() time.Duration { return s.refresh.TTL() }

// Register creates an unverified customer account.
func (s *Service) Register(username, email, password string) (*users.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := users.ValidateUsername(username); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "%v", err)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "email is invalid")
	}
	if err := users.ValidatePasswordStrength(password); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "%v", err)
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] HashPassword")
	}
	user := &users.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		RoleID:       users.RoleCustomer,
		DateJoined:   s.clock.Now(),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SendOTP issues a verification code for an unverified account. Delivery is the
// caller's concern; the code is returned.
func (s *Service) SendOTP(email string) (string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user.Verified {
		return "", apperrors.Wrapf(apperrors.ErrConflict, "user already verified")
	}
	return s.otps.Issue(user.Email)
}

func (s *Service) VerifyOTP(email, code string) error {
	if _, err := s.users.GetByEmail(email); err != nil {
		return err
	}
	if err := s.otps.Verify(email, code); err != nil {
		return err
	}
	return s.users.SetVerified(email, true)
}

// Login checks the credentials and opens a session. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, apperrors.ErrUserNotVerified
	}

	user.LastLogin = s.clock.Now()
	if err := s.users.Update(user); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] Update")
	}

	refreshToken, err := s.refresh.Create(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] refresh.Create")
	}
	return s.session(user, refreshToken)
}

// Refresh spends refreshToken and returns a session with a new access token and
// the rotated refresh token.
func (s *Service) Refresh(refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	next, userID, err := s.refresh.Rotate(refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		_ = s.refresh.Revoke(userID)
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRefreshToken, "owner gone")
	}
	return s.session(user, next)
}

// Authenticate validates an access token and returns its claims.
func (s *Service) Authenticate(accessToken string) (*token.Claims, error) {
	if accessToken == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.access.Parse(accessToken)
}

// Revoke ends the user's ability to renew; outstanding access tokens run out on their own.
func (s *Service) Revoke(userID string) error {
	return s.refresh.Revoke(userID)
}

func (s *Service) session(user *users.User, refreshToken string) (*Session, error) {
	accessToken, expires, err := s.access.Issue(user)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.session] Issue")
	}
	s.logger.Debug().Str("user", user.ID).Time("expires", expires).Msg("session issued")
	return &Session{
		User:          user,
		AccessToken:   accessToken,
		AccessExpires: expires,
		RefreshToken:  refreshToken,
	}, nil
}
