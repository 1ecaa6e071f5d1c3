package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "correct horse" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(Session{
			AccessToken: "baas-token",
			TokenType:   "bearer",
			ExpiresIn:   3600,
			User:        User{ID: "uid-1", Email: body["email"]},
		})
	})
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer baas-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(User{ID: "uid-1", Email: "admin@example.org"})
	})
	return httptest.NewServer(mux)
}

func TestSignInWithPassword(t *testing.T) {
	srv := fakeAuthServer(t)
	defer srv.Close()

	c := NewClient(srv.URL+"/", "anon", srv.Client())
	session, err := c.SignInWithPassword(context.Background(), "admin@example.org", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "baas-token", session.AccessToken)
	assert.Equal(t, "uid-1", session.User.ID)

	_, err = c.SignInWithPassword(context.Background(), "admin@example.org", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	srv := fakeAuthServer(t)
	defer srv.Close()

	c := NewClient(srv.URL, "anon", srv.Client())
	user, err := c.GetUser(context.Background(), "baas-token")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.org", user.Email)

	_, err = c.GetUser(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", srv.Client())
	_, err := c.SignInWithPassword(context.Background(), "a@b.co", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "503")
}
