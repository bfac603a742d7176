package session

import "time"

// Cookie is a persisted session cookie. Cookies are keyed by (Host, Name, Path).
type Cookie struct {
	// URL is the request URL the cookie was received on, without query.
	URL      string
	Host     string
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  time.Time // zero for cookies that last until logout
	Secure   bool
	HttpOnly bool
}

func (c Cookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

type Repo interface {
	Save(c Cookie) error
	Delete(host, name, path string) error
	Load() ([]Cookie, error)
	Clear(host string) error
}
