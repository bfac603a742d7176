package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogarn/filkompedia-client/session"
)

func openMemoryRepo(t *testing.T) *session.SQLiteRepo {
	t.Helper()
	repo, err := session.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteRepoUpsert(t *testing.T) {
	repo := openMemoryRepo(t)
	expires := time.Unix(1_900_000_000, 0)

	c := session.Cookie{
		URL:      "http://localhost:8080/auths/login",
		Host:     "localhost",
		Name:     "access_token",
		Value:    "first",
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
	}
	require.NoError(t, repo.Save(c))
	c.Value = "second"
	require.NoError(t, repo.Save(c))

	stored, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "second", stored[0].Value)
	assert.True(t, stored[0].Expires.Equal(expires))
	assert.True(t, stored[0].HttpOnly)
	assert.False(t, stored[0].Secure)
}

func TestSQLiteRepoDeleteAndClear(t *testing.T) {
	repo := openMemoryRepo(t)
	for _, c := range []session.Cookie{
		{URL: "http://a.test/", Host: "a.test", Name: "one", Value: "1", Path: "/"},
		{URL: "http://a.test/", Host: "a.test", Name: "two", Value: "2", Path: "/"},
		{URL: "http://b.test/", Host: "b.test", Name: "three", Value: "3", Path: "/"},
	} {
		require.NoError(t, repo.Save(c))
	}

	require.NoError(t, repo.Delete("a.test", "one", "/"))
	stored, err := repo.Load()
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	require.NoError(t, repo.Clear("a.test"))
	stored, err = repo.Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "three", stored[0].Name)
	assert.True(t, stored[0].Expires.IsZero())
}
