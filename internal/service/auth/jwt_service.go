package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair is the access/refresh token pair minted on successful
// registration or login. Pairs are ephemeral: they are never persisted and
// are invalidated only by expiry.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// IssueTokenPair mints an access token and a refresh token bound to the
	// given user identity. Issuance only fails on signing errors, which
	// indicate key misconfiguration rather than a per-request condition.
	IssueTokenPair(ctx context.Context, userID uuid.UUID) (*TokenPair, error)

	// ValidateToken validates an access token string and extracts the claims.
	// Returns ErrExpiredToken, ErrInvalidToken or ErrWrongTokenType on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// ValidateRefreshToken validates a refresh token string and extracts the
	// claims. Returns ErrExpiredRefreshToken, ErrInvalidRefreshToken or
	// ErrWrongTokenType on failure.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated claims extracted from a JWT.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	// Used to prevent token misuse across different contexts.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
