package dto

import "time"

// LoginRequest represents admin login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionExchangeRequest trades an existing BaaS access token for an admin token
type SessionExchangeRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type" example:"Bearer"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AdminIdentity is the signed in admin
type AdminIdentity struct {
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	Admin AdminIdentity `json:"admin"`
}
