package sessionrepofake

import (
	"sort"
	"sync"

	"github.com/yogarn/filkompedia-client/session"
)

var _ session.Repo = (*FakeCookieRepo)(nil)

type key struct {
	host, name, path string
}

type FakeCookieRepo struct {
	cookies map[key]session.Cookie
	lock    sync.RWMutex
}

func NewFakeCookieRepo() *FakeCookieRepo {
	return &FakeCookieRepo{
		cookies: make(map[key]session.Cookie),
	}
}

func (r *FakeCookieRepo) Save(c session.Cookie) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.cookies[key{c.Host, c.Name, c.Path}] = c
	return nil
}

func (r *FakeCookieRepo) Delete(host, name, path string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.cookies, key{host, name, path})
	return nil
}

func (r *FakeCookieRepo) Load() ([]session.Cookie, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	cookies := make([]session.Cookie, 0, len(r.cookies))
	for _, c := range r.cookies {
		cookies = append(cookies, c)
	}
	sort.Slice(cookies, func(i, j int) bool {
		if cookies[i].Host != cookies[j].Host {
			return cookies[i].Host < cookies[j].Host
		}
		return cookies[i].Name < cookies[j].Name
	})
	return cookies, nil
}

func (r *FakeCookieRepo) Clear(host string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for k := range r.cookies {
		if k.host == host {
			delete(r.cookies, k)
		}
	}
	return nil
}
