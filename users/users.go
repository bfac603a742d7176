package users

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// RoleID matches the role ids the bookstore API sends.
type RoleID int

const (
	RoleAdmin    RoleID = 1
	RoleCustomer RoleID = 2
)

func (r RoleID) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

const (
	MaxUsernameLength = 32
	MinPasswordLength = 8
)

type User struct {
	ID             string    `json:"id,omitempty"`             // Numeric id assigned by the repo
	Email          string    `json:"email,omitempty"`          // Login name, unique
	Username       string    `json:"username,omitempty"`       // Display name
	PasswordHash   string    `json:"-"`                        // bcrypt hash, never serialized
	RoleID         RoleID    `json:"roleId,omitempty"`         // RoleAdmin or RoleCustomer
	ProfilePicture string    `json:"profilePicture,omitempty"` // URL of an uploaded image
	DateJoined     time.Time `json:"date_joined,omitempty"`
	LastLogin      time.Time `json:"last_login,omitempty"`
	Verified       bool      `json:"verified,omitempty"` // Set once the emailed OTP is confirmed
}

func (u *User) IsAdmin() bool {
	return u.RoleID == RoleAdmin
}

// ValidateUsername requires 1 to 32 characters after trimming.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(username))
	if n == 0 {
		return fmt.Errorf("username is required")
	}
	if n > MaxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	return nil
}

// ValidatePasswordStrength checks the password is at least 8 characters long
func ValidatePasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword checks a password against the user's hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}
