package server

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

// idleLimiter is how long an address's bucket survives without traffic.
const idleLimiter = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client address.
type clientLimiter struct {
	limit rate.Limit
	burst int
	clock clockwork.Clock

	mu      sync.Mutex
	clients map[string]*limiterEntry
}

func newClientLimiter(perMinute float64, burst int, clock clockwork.Clock) *clientLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(perMinute / 60)
	}
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		limit:   limit,
		burst:   burst,
		clock:   clock,
		clients: make(map[string]*limiterEntry),
	}
}

func (l *clientLimiter) Allow(addr string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for a, e := range l.clients {
		if now.Sub(e.lastSeen) > idleLimiter {
			delete(l.clients, a)
		}
	}
	e, ok := l.clients[addr]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[addr] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}
