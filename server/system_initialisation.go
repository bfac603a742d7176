package server

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/yogarn/filkompedia-client/catalog"
	"github.com/yogarn/filkompedia-client/internal/config"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
	"github.com/yogarn/filkompedia-client/users"
)

const DefaultAdminUsername = "admin"

// InitialiseSystem creates the admin account and, when the catalog is empty, the
// sample books. An admin password generated here is logged once.
func (s *Server) InitialiseSystem(config config.Config) error {
	adminEmail := generateEmailFromBaseURL(config.GetAdminUser(), config.GetBaseURL())
	generatedPassword, err := s.createAdmin(adminEmail, config.GetAdminPassword())
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to bootstrap admin: %w", err)
	}

	var seeded []catalog.Book
	if len(s.repos.Catalog.ListBooks("", 1, 1)) == 0 {
		if seeded, err = s.repos.Catalog.Seed(catalog.SampleBooks); err != nil {
			return fmt.Errorf("[Server InitialiseSystem] failed to seed books: %w", err)
		}
	}

	event := s.logger.Info().Str("admin", adminEmail).Int("books_seeded", len(seeded))
	if generatedPassword != "" {
		event = event.Str("password", generatedPassword)
	}
	event.Msg("system initialised")
	return nil
}

// createAdmin creates the verified admin user if it doesn't exist, returning the
// password only when one had to be generated.
func (s *Server) createAdmin(adminEmail, defaultPassword string) (generatedPassword string, err error) {
	if existing, err := s.repos.Users.GetByEmail(adminEmail); err == nil && existing.IsAdmin() {
		return "", nil
	}

	password := defaultPassword
	if password == "" {
		passwordBytes := make([]byte, 16)
		if _, err := rand.Read(passwordBytes); err != nil {
			return "", fmt.Errorf("[server createAdmin] failed to generate password: %w", err)
		}
		password = base64.URLEncoding.EncodeToString(passwordBytes)
		generatedPassword = password
	}

	passwordHash, err := users.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("[server createAdmin] failed to hash password: %w", err)
	}

	admin := &users.User{
		Email:        adminEmail,
		Username:     DefaultAdminUsername,
		PasswordHash: passwordHash,
		RoleID:       users.RoleAdmin,
		DateJoined:   s.clock.Now(),
		Verified:     true,
	}
	if err := s.repos.Users.Create(admin); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return "", fmt.Errorf("[server createAdmin] %s exists without the admin role: %w", adminEmail, err)
		}
		return "", fmt.Errorf("[server createAdmin] failed to create admin: %w", err)
	}
	return generatedPassword, nil
}

// generateEmailFromBaseURL creates an email address from a username and base URL
// Example: ("admin", "http://localhost:8080/path") -> "admin@localhost"
func generateEmailFromBaseURL(user, baseURL string) string {
	if strings.Contains(user, "@") {
		return user
	}
	domain := strings.ReplaceAll(strings.ReplaceAll(baseURL, "https://", ""), "http://", "")
	domain = strings.SplitN(domain, "/", 2)[0] // Remove any path
	domain = strings.SplitN(domain, ":", 2)[0] // Remove port if present
	return fmt.Sprintf("%s@%s", user, domain)
}
