package server

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestClientLimiter(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := newClientLimiter(60, 2, clock)

	require.True(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"))

	// buckets are per address
	require.True(t, l.Allow("10.0.0.2"))

	clock.Advance(time.Second)
	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"))
}

func TestClientLimiterPrunesIdleClients(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := newClientLimiter(1, 1, clock)

	require.True(t, l.Allow("10.0.0.1"))
	clock.Advance(idleLimiter + time.Second)
	require.True(t, l.Allow("10.0.0.2"))

	l.mu.Lock()
	defer l.mu.Unlock()
	require.Len(t, l.clients, 1)
	require.Contains(t, l.clients, "10.0.0.2")
}

func TestClientLimiterUnlimited(t *testing.T) {
	l := newClientLimiter(0, 1, clockwork.NewFakeClock())
	for range 100 {
		require.True(t, l.Allow("10.0.0.1"))
	}
}
