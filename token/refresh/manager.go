package refresh

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/yogarn/filkompedia-client/internal/config"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

const defaultTokenLength = 32

// Manager handles refresh token creation, validation, and rotation
type Manager struct {
	repo   Repo
	ttl    time.Duration
	length int
	clock  clockwork.Clock
	mu     sync.Mutex // serializes rotation so a token is consumed once
}

type ManagerOption func(*Manager)

func WithClock(clock clockwork.Clock) ManagerOption {
	return func(m *Manager) {
		m.clock = clock
	}
}

// NewManager creates a new refresh token manager
func NewManager(repo Repo, cfg config.ServerConfig, options ...ManagerOption) *Manager {
	m := &Manager{
		repo:   repo,
		ttl:    cfg.GetRefreshTokenTTL(),
		length: cfg.GetRefreshTokenLength(),
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.length <= 0 {
		m.length = defaultTokenLength
	}
	return m
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create generates a new refresh token and stores it, replacing the user's previous one
func (m *Manager) Create(userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.create(userID)
}

func (m *Manager) create(userID string) (string, error) {
	// Single refresh token per user
	if existingToken, err := m.repo.GetByUserID(userID); err == nil && existingToken != nil {
		if err := m.repo.Delete(existingToken.Token); err != nil {
			return "", fmt.Errorf("failed to delete existing refresh token: %w", err)
		}
	}

	tokenBytes := make([]byte, m.length)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	tokenStr := hex.EncodeToString(tokenBytes)
	if err := m.repo.Upsert(&StoredRefreshToken{
		Token:  tokenStr,
		UserID: userID,
		Iat:    m.clock.Now(),
	}); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return tokenStr, nil
}

// Rotate consumes token and returns its replacement along with the owner's id.
func (m *Manager) Rotate(token string) (newToken, userID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rt, err := m.repo.Get(token)
	if err != nil {
		return "", "", apperrors.ErrInvalidRefreshToken
	}
	if m.IsExpired(rt) {
		_ = m.repo.Delete(rt.Token)
		return "", "", apperrors.ErrRefreshTokenExpired
	}
	newToken, err = m.create(rt.UserID)
	if err != nil {
		return "", "", err
	}
	return newToken, rt.UserID, nil
}

// Revoke removes the user's refresh token, if any
func (m *Manager) Revoke(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rt, err := m.repo.GetByUserID(userID)
	if err != nil {
		return nil
	}
	return m.repo.Delete(rt.Token)
}

// IsExpired checks if a refresh token is older than the configured TTL
func (m *Manager) IsExpired(rt *StoredRefreshToken) bool {
	return m.clock.Since(rt.Iat) > m.ttl
}
