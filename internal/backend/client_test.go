package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kiash254/pos-terminal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, logger.NewNop())
}

func TestObtainTokenSuccess(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/token/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cashier", body["username"])
		json.NewEncoder(w).Encode(map[string]string{"access": "a1", "refresh": "r1"})
	}))

	pair, err := c.ObtainToken(context.Background(), "cashier", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a1", pair.Access)
	assert.Equal(t, "r1", pair.Refresh)
}

func TestObtainTokenRejectionIsInvalidCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.ObtainToken(context.Background(), "cashier", "wrong")
	// A 401 on the token endpoint is bad credentials, not a stale session.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrAuthorizationExpired)
}

func TestRegisterBadRequestIsInvalidCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Username already exists"})
	}))

	_, err := c.Register(context.Background(), RegisterInput{Username: "cashier"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUnreachableBackendIsNetworkError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second, logger.NewNop())

	_, err := c.FetchProfile(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestServerErrorCarriesDetail(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "database down"})
	}))

	_, err := c.FetchProfile(context.Background(), "tok")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "database down", se.Message)
}

func TestRefreshTokenExchange(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/token/refresh/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "r1", body["refresh"])
		json.NewEncoder(w).Encode(map[string]string{"access": "a2"})
	}))

	access, err := c.RefreshToken(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "a2", access)
}
