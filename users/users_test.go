package users_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yogarn/filkompedia-client/users"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"simple", "john", false},
		{"blank", "   ", true},
		{"at limit", strings.Repeat("a", users.MaxUsernameLength), false},
		{"too long", strings.Repeat("a", users.MaxUsernameLength+1), true},
		{"multibyte counts runes", strings.Repeat("é", users.MaxUsernameLength), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := users.ValidateUsername(tt.username)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	require.Error(t, users.ValidatePasswordStrength("short"))
	require.NoError(t, users.ValidatePasswordStrength("longenough"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := users.HashPassword("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)

	u := &users.User{PasswordHash: hash}
	require.True(t, u.CheckPassword("password123"))
	require.False(t, u.CheckPassword("password124"))
}

func TestRoles(t *testing.T) {
	require.True(t, users.RoleAdmin.Valid())
	require.True(t, users.RoleCustomer.Valid())
	require.False(t, users.RoleID(0).Valid())
	require.False(t, users.RoleID(3).Valid())

	require.True(t, (&users.User{RoleID: users.RoleAdmin}).IsAdmin())
	require.False(t, (&users.User{RoleID: users.RoleCustomer}).IsAdmin())
}
