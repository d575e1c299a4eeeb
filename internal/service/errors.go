package service

import "errors"

// Authentication errors returned by AccountService.Login.
var (
	// ErrInvalidCredentials is the uniform failure for a wrong password or a
	// nonexistent account. The two cases are deliberately indistinguishable
	// to prevent user enumeration through the login endpoint.
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")

	// ErrEmailNotVerified is returned when credentials are correct but the
	// account has not completed email verification.
	ErrEmailNotVerified = errors.New("email is not verified")
)
