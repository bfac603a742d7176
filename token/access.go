package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
	"github.com/yogarn/filkompedia-client/users"
)

const DefaultIssuer = "filkompedia"

// Claims are carried by the access_token cookie.
type Claims struct {
	Role users.RoleID `json:"role"`
	jwt.RegisteredClaims
}

// Issuer creates and verifies short lived access tokens.
type Issuer struct {
	signer Signer
	ttl    time.Duration
	issuer string
	clock  clockwork.Clock
}

type IssuerOption func(*Issuer)

func WithClock(clock clockwork.Clock) IssuerOption {
	return func(i *Issuer) {
		i.clock = clock
	}
}

func WithIssuer(issuer string) IssuerOption {
	return func(i *Issuer) {
		i.issuer = issuer
	}
}

func NewIssuer(signer Signer, ttl time.Duration, options ...IssuerOption) *Issuer {
	i := &Issuer{
		signer: signer,
		ttl:    ttl,
		issuer: DefaultIssuer,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range options {
		opt(i)
	}
	if i.ttl <= 0 {
		i.ttl = 15 * time.Minute
	}
	return i
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs an access token for user and returns it with its expiry.
func (i *Issuer) Issue(user *users.User) (string, time.Time, error) {
	now := i.clock.Now()
	expires := now.Add(i.ttl)
	claims := Claims{
		Role: user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.New().String(),
		},
	}
	signed, err := i.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "Issuer.Issue")
	}
	return signed, expires, nil
}

// Parse verifies raw against the issuer's clock. Expired tokens yield
// ErrSessionExpired, anything else unusable yields ErrInvalidToken.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, i.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwt.WithTimeFunc(i.clock.Now),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, apperrors.Wrapf(apperrors.ErrSessionExpired, "access token")
	default:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "%v", err)
	}
	if claims.Subject == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "missing subject")
	}
	return claims, nil
}
