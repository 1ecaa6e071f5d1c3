package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	appauth "github.com/acemedformatics/acemed/internal/app/auth"
	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/auth"
	"github.com/acemedformatics/acemed/internal/pkg/identity"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	password string
	down     bool
}

func (f *fakeIdentity) SignInWithPassword(_ context.Context, email, password string) (*identity.Session, error) {
	if f.down {
		return nil, errors.New("dial tcp: connection refused")
	}
	if password != f.password {
		return nil, identity.ErrInvalidCredentials
	}
	return &identity.Session{AccessToken: "baas-token", User: identity.User{ID: "user-" + email, Email: email}}, nil
}

func (f *fakeIdentity) GetUser(_ context.Context, accessToken string) (*identity.User, error) {
	if accessToken != "baas-token" {
		return nil, identity.ErrInvalidSession
	}
	return &identity.User{ID: "user-1", Email: "Admin@AceMed.example.org"}, nil
}

type adminSet map[string]bool

func (a adminSet) IsAdmin(_ context.Context, email string) (bool, error) {
	return a[strings.ToLower(email)], nil
}

func newTestAuthService(provider identity.Provider) (*AuthService, *appauth.AuthorizationService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "acemed-test",
	})
	revoked := auth.NewMemoryRevocationStore()
	gate := appauth.NewAuthorizationService(jwtService, revoked, adminSet{"admin@acemed.example.org": true})
	return NewAuthService(provider, gate, jwtService, revoked, zerolog.Nop()), gate
}

func TestLoginIssuesTokenForAdmins(t *testing.T) {
	svc, gate := newTestAuthService(&fakeIdentity{password: "s3cret"})
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: " Admin@AceMed.example.org ", Password: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, 3600, resp.Token.ExpiresIn)
	assert.Equal(t, "admin@acemed.example.org", resp.Admin.Email)

	claims, err := gate.Authorize(ctx, "Bearer "+resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@acemed.example.org", claims.Email)
	assert.Equal(t, resp.Admin, svc.Me(claims))
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(&fakeIdentity{password: "s3cret"})

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@acemed.example.org", Password: "wrong"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "visitor@example.org", Password: "s3cret"})
	assert.True(t, errors.Is(err, apperrors.ErrNotAdmin))

	down, _ := newTestAuthService(&fakeIdentity{down: true})
	_, err = down.Login(ctx, &dto.LoginRequest{Email: "admin@acemed.example.org", Password: "s3cret"})
	assert.True(t, errors.Is(err, apperrors.ErrExternalService))
}

func TestExchangeSession(t *testing.T) {
	svc, _ := newTestAuthService(&fakeIdentity{})

	resp, err := svc.ExchangeSession(context.Background(), " baas-token ")
	require.NoError(t, err)
	assert.Equal(t, "admin@acemed.example.org", resp.Admin.Email)
	assert.Equal(t, "user-1", resp.Admin.Subject)

	_, err = svc.ExchangeSession(context.Background(), "stale")
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, gate := newTestAuthService(&fakeIdentity{password: "s3cret"})
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@acemed.example.org", Password: "s3cret"})
	require.NoError(t, err)
	claims, err := gate.Authorize(ctx, "Bearer "+resp.Token.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	_, err = gate.Authorize(ctx, "Bearer "+resp.Token.AccessToken)
	assert.True(t, errors.Is(err, apperrors.ErrTokenRevoked))
}
