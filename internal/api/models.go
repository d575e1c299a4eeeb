package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/regsvc/user-api/internal/domain"
	"github.com/regsvc/user-api/internal/service/auth"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// Field rules are applied by the account service so failures accumulate
// per field rather than aborting on the first violation.
type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// TokenResponse carries the minted token pair.
type TokenResponse struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// UserResponse is the public projection of a user: identity fields and
// read-only timestamps only. The password hash and any privilege flags are
// never part of it.
type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	IsVerified bool       `json:"is_verified"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`
}

// AuthResponse defines the successful response for the registration and
// login endpoints.
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   TokenResponse `json:"token"`
}

// NewUserResponse projects a domain user into its public representation.
func NewUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		IsVerified: user.IsVerified,
		DateJoined: user.DateJoined,
	}

	if !user.LastLogin.IsZero() {
		lastLogin := user.LastLogin
		resp.LastLogin = &lastLogin
	}

	return resp
}

// NewTokenResponse renders a token pair for the response body.
func NewTokenResponse(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		Refresh: pair.Refresh,
		Access:  pair.Access,
	}
}
