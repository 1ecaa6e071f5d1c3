package services

import (
	"context"
	"errors"
	"strings"
	"time"

	appauth "github.com/acemedformatics/acemed/internal/app/auth"
	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/auth"
	"github.com/acemedformatics/acemed/internal/pkg/identity"
	"github.com/rs/zerolog"
)

// AuthService signs admins in through the BaaS and manages their session tokens
type AuthService struct {
	identity identity.Provider
	gate     *appauth.AuthorizationService
	jwt      *auth.JWTService
	revoked  auth.RevocationStore
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(provider identity.Provider, gate *appauth.AuthorizationService, jwtService *auth.JWTService, revoked auth.RevocationStore, logger zerolog.Logger) *AuthService {
	return &AuthService{
		identity: provider,
		gate:     gate,
		jwt:      jwtService,
		revoked:  revoked,
		logger:   logger,
		now:      time.Now,
	}
}

// Login checks the password with the BaaS and issues an admin token when the email is an admin
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	session, err := s.identity.SignInWithPassword(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("BaaS sign in failed")
		return nil, apperrors.NewCustomError(apperrors.ErrExternalService, "authentication service unavailable")
	}

	user := session.User
	if user.Email == "" {
		user.Email = email
	}
	return s.issue(ctx, user)
}

// ExchangeSession trades an existing BaaS access token for an admin token
func (s *AuthService) ExchangeSession(ctx context.Context, accessToken string) (*dto.AuthResponse, error) {
	user, err := s.identity.GetUser(ctx, strings.TrimSpace(accessToken))
	if err != nil {
		if errors.Is(err, identity.ErrInvalidSession) {
			return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "session is not valid")
		}
		s.logger.Error().Err(err).Msg("BaaS get user failed")
		return nil, apperrors.NewCustomError(apperrors.ErrExternalService, "authentication service unavailable")
	}
	return s.issue(ctx, *user)
}

func (s *AuthService) issue(ctx context.Context, user identity.User) (*dto.AuthResponse, error) {
	if err := s.gate.EnsureAdmin(ctx, user.Email); err != nil {
		return nil, err
	}

	token, err := s.jwt.IssueAdminToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", strings.ToLower(user.Email)).Msg("Admin signed in")
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token.AccessToken,
			TokenType:   "Bearer",
			ExpiresIn:   token.ExpiresIn,
			ExpiresAt:   token.ExpiresAt,
		},
		Admin: dto.AdminIdentity{
			Email:   strings.ToLower(user.Email),
			Subject: user.ID,
		},
	}, nil
}

// Logout revokes the token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Error().Err(err).Str("jti", claims.ID).Msg("Failed to revoke token")
		return err
	}
	s.logger.Info().Str("email", claims.Email).Msg("Admin signed out")
	return nil
}

// Me returns the identity carried by claims
func (s *AuthService) Me(claims *auth.Claims) dto.AdminIdentity {
	return dto.AdminIdentity{Email: claims.Email, Subject: claims.Subject}
}
