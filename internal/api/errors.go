package api

import (
	"errors"
	"net/http"

	"github.com/regsvc/user-api/internal/api/shared"
	"github.com/regsvc/user-api/internal/service"
	"github.com/regsvc/user-api/internal/service/auth"
	"github.com/regsvc/user-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs service.ValidationErrors

	switch {
	// Client-correctable failures; the login endpoint deliberately answers
	// 400 for credential failures rather than 401.
	case errors.As(err, &verrs),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailNotVerified):
		return http.StatusBadRequest

	// Token errors on authenticated or refresh requests
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Unable to log in with provided credentials"

	case errors.Is(err, service.ErrEmailNotVerified):
		return "Email is not verified"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the appropriate response for an error returned
// by the account service. Field-keyed validation errors keep their map
// shape; everything else is rendered as a single sanitized message.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs service.ValidationErrors
	if errors.As(err, &verrs) {
		shared.RespondWithValidationErrors(w, r, verrs)
		return
	}

	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
