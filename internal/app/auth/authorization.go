// Package auth decides whether a request may enter the admin area.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	pkgauth "github.com/acemedformatics/acemed/internal/pkg/auth"
	"github.com/acemedformatics/acemed/internal/pkg/logger"
)

// AdminLookup answers whether an email is on the admin list
type AdminLookup interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// TokenValidator verifies admin session tokens
type TokenValidator interface {
	ValidateAndExtractClaims(tokenString string) (*pkgauth.Claims, error)
}

// AuthorizationService is the admin gate: a valid, unrevoked token whose email is still an admin
type AuthorizationService struct {
	tokens  TokenValidator
	revoked pkgauth.RevocationStore
	admins  AdminLookup
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(tokens TokenValidator, revoked pkgauth.RevocationStore, admins AdminLookup) *AuthorizationService {
	return &AuthorizationService{
		tokens:  tokens,
		revoked: revoked,
		admins:  admins,
	}
}

// Authorize checks the Authorization header value and returns the admin's claims
func (s *AuthorizationService) Authorize(ctx context.Context, authHeader string) (*pkgauth.Claims, error) {
	if strings.TrimSpace(authHeader) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "authorization header missing")
	}

	token, err := pkgauth.ExtractBearerToken(authHeader)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "authorization header must be a bearer token")
	}

	claims, err := s.tokens.ValidateAndExtractClaims(token)
	if err != nil {
		if errors.Is(err, pkgauth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("Error checking token revocation")
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	if err := s.EnsureAdmin(ctx, claims.Email); err != nil {
		return nil, err
	}
	return claims, nil
}

// EnsureAdmin fails with ErrNotAdmin unless email is on the admin list
func (s *AuthorizationService) EnsureAdmin(ctx context.Context, email string) error {
	ok, err := s.admins.IsAdmin(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		logger.FromContext(ctx).Warn().Str("email", email).Msg("Admin gate rejected non-admin email")
		return apperrors.NewCustomError(apperrors.ErrNotAdmin, "not authorized as admin")
	}
	return nil
}
