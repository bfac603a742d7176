package fakeuserrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
	"github.com/yogarn/filkompedia-client/users"
	fakeuserrepo "github.com/yogarn/filkompedia-client/users/repofake"
)

func TestFakeUserRepo(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()

	alice := &users.User{Email: "Alice@Example.com", Username: "alice", RoleID: users.RoleCustomer}
	require.NoError(t, repo.Create(alice))
	require.NotEmpty(t, alice.ID)

	bob := &users.User{Email: "bob@example.com", Username: "bob", RoleID: users.RoleCustomer}
	require.NoError(t, repo.Create(bob))
	require.NotEqual(t, alice.ID, bob.ID)

	t.Run("duplicate email conflicts case-insensitively", func(t *testing.T) {
		err := repo.Create(&users.User{Email: "alice@example.com"})
		require.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("lookups return copies", func(t *testing.T) {
		got, err := repo.GetByEmail("ALICE@example.com")
		require.NoError(t, err)
		got.Username = "changed"

		again, err := repo.GetByID(alice.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", again.Username)
	})

	t.Run("update keeps the email", func(t *testing.T) {
		got, err := repo.GetByID(bob.ID)
		require.NoError(t, err)
		got.Email = "robert@example.com"
		require.ErrorIs(t, repo.Update(got), apperrors.ErrInvalidInput)
	})

	require.NoError(t, repo.SetVerified("bob@example.com", true))
	got, err := repo.GetByID(bob.ID)
	require.NoError(t, err)
	require.True(t, got.Verified)

	page, err := repo.List(0, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, alice.ID, page[0].ID)

	page, err = repo.List(1, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, bob.ID, page[0].ID)

	require.NoError(t, repo.Delete(alice.ID))
	_, err = repo.GetByID(alice.ID)
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	_, err = repo.GetByEmail("alice@example.com")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)

	page, err = repo.List(0, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
}
