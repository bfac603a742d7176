package bookstore_test

import (
	"context"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogarn/filkompedia-client/bookstore"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

func TestLogin(t *testing.T) {
	f := setupTestFixture(t)
	f.mux.HandleFunc("POST /auths/login", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["email"] != "budi@test" || body["password"] != "rahasia123" {
			writeMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "a1", Path: "/"})
		writeData(t, w, http.StatusOK, nil)
	})
	var sawCookie atomic.Bool
	f.mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie("access_token")
		sawCookie.Store(err == nil)
		writeData(t, w, http.StatusOK, map[string]any{"id": 1})
	})

	t.Run("bad credentials do not renew", func(t *testing.T) {
		err := f.client.Login(context.Background(), "budi@test", "wrong-pass")
		require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		assert.EqualValues(t, 0, f.refreshCalls.Load())
	})

	t.Run("session cookie is shared with authenticated calls", func(t *testing.T) {
		require.NoError(t, f.client.Login(context.Background(), "budi@test", "rahasia123"))
		_, err := f.client.Me(context.Background())
		require.NoError(t, err)
		assert.True(t, sawCookie.Load())
	})

	t.Run("requires email and password", func(t *testing.T) {
		assert.ErrorIs(t, f.client.Login(context.Background(), " ", "x"), apperrors.ErrInvalidInput)
		assert.ErrorIs(t, f.client.Login(context.Background(), "a@b", ""), apperrors.ErrInvalidInput)
	})
}

func TestRegister(t *testing.T) {
	f := setupTestFixture(t)
	var otpFor atomic.Value
	f.mux.HandleFunc("POST /auths/register", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, "budi", body["username"])
		writeData(t, w, http.StatusCreated, nil)
	})
	f.mux.HandleFunc("POST /auths/send-otp", func(w http.ResponseWriter, r *http.Request) {
		otpFor.Store(decodeBody(t, r)["email"])
		writeData(t, w, http.StatusOK, nil)
	})

	err := f.client.Register(context.Background(), bookstore.RegisterRequest{Username: "budi", Email: "budi@test", Password: "rahasia123"})
	require.NoError(t, err)
	assert.Equal(t, "budi@test", otpFor.Load())
}

func TestRegisterValidation(t *testing.T) {
	f := setupTestFixture(t)
	long := "abcdefghijklmnopqrstuvwxyz0123456789"

	tests := []struct {
		name  string
		req   bookstore.RegisterRequest
		field string
	}{
		{"missing username", bookstore.RegisterRequest{Email: "a@b", Password: "12345678"}, "username"},
		{"long username", bookstore.RegisterRequest{Username: long, Email: "a@b", Password: "12345678"}, "username"},
		{"missing email", bookstore.RegisterRequest{Username: "budi", Password: "12345678"}, "email"},
		{"short password", bookstore.RegisterRequest{Username: "budi", Email: "a@b", Password: "1234567"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.client.Register(context.Background(), tt.req)
			var vErr *bookstore.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestVerifyOTP(t *testing.T) {
	f := setupTestFixture(t)
	f.mux.HandleFunc("POST /auths/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["otp"] != "123456" {
			writeMessage(w, http.StatusBadRequest, "invalid otp")
			return
		}
		writeData(t, w, http.StatusOK, nil)
	})

	require.NoError(t, f.client.VerifyOTP(context.Background(), "budi@test", "123456"))
	assert.ErrorIs(t, f.client.VerifyOTP(context.Background(), "budi@test", "654321"), apperrors.ErrInvalidInput)
	assert.ErrorIs(t, f.client.VerifyOTP(context.Background(), "budi@test", "12ab56"), apperrors.ErrInvalidInput)
}

func TestLogout(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.client.Logout(context.Background()))

	u, _ := url.Parse(f.server.URL)
	assert.Equal(t, []string{u.Host}, f.session.cleared)
}
