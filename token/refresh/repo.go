package refresh

import (
	"time"
)

// StoredRefreshToken is the server side record of a refresh token. The client only
// receives Token, an opaque random string.
type StoredRefreshToken struct {
	Token  string    // The random token string sent in the refresh_token cookie
	UserID string    // Owner
	Iat    time.Time // Issued at, by the manager's clock
}

// Repo stores refresh token metadata keyed by the token string.
type Repo interface {
	Upsert(refreshToken *StoredRefreshToken) error
	Delete(token string) error
	Get(token string) (*StoredRefreshToken, error)
	GetByUserID(userID string) (*StoredRefreshToken, error)
}
