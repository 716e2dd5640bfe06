package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/focussync/internal/model"
)

func signedToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	s, err := token.SignedString([]byte("test"))
	require.NoError(t, err)
	return s
}

func TestRegister_StoresTokenPair(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(AuthResult{
			User:   Account{ID: "u1", Email: "ann@example.com"},
			Tokens: &model.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
		})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	res, err := c.Register(context.Background(), "ann@example.com", "pw", "Ann")
	require.NoError(t, err)
	assert.Equal(t, "u1", res.User.ID)

	access, refresh := c.Tokens()
	assert.Equal(t, "acc", access)
	assert.Equal(t, "ref", refresh)
	assert.True(t, c.HasSession())
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	_, err := c.Login(context.Background(), "ann@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, c.HasSession())
}

func TestRegister_Conflict(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email already registered"})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	_, err := c.Register(context.Background(), "ann@example.com", "pw", "Ann")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestSync_AttachesBearer(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sync", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(SyncResult{LastSyncedAt: "2024-01-01T00:00:00Z"})
	}))
	defer ts.Close()

	access := signedToken(t, time.Hour)

	c := NewHTTPClient(ts.URL)
	c.SetTokens(access, "ref")

	_, err := c.Sync(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+access, gotAuth)
}

func TestSync_AnonymousWithoutSession(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(SyncResult{})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	_, err := c.Sync(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "no session means no bearer header")
}

func TestSync_RefreshesExpiringAccessToken(t *testing.T) {
	fresh := signedToken(t, time.Hour)

	var refreshed bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshed = true
			_ = json.NewEncoder(w).Encode(AuthResult{
				Tokens: &model.TokenPair{AccessToken: fresh, RefreshToken: "ref2"},
			})
		case "/sync":
			assert.Equal(t, "Bearer "+fresh, r.Header.Get("Authorization"),
				"sync must use the rotated access token")
			_ = json.NewEncoder(w).Encode(SyncResult{})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	c.SetTokens(signedToken(t, time.Second), "ref1")

	_, err := c.Sync(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, refreshed)

	_, refresh := c.Tokens()
	assert.Equal(t, "ref2", refresh)
}

func TestRefresh_RejectedClearsSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid refresh token"})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	c.SetTokens("acc", "ref")

	err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, c.HasSession(), "a rejected refresh token cannot be retried")
}

func TestRefresh_TransportErrorKeepsSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from now on

	c := NewHTTPClient(ts.URL)
	c.SetTokens("acc", "ref")

	err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, c.HasSession(), "the pair may still be good once the server is back")
}

func TestPing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	assert.NoError(t, c.Ping(context.Background()))

	ts.Close()
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}
