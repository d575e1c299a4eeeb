package service

import (
	"fmt"
	"sort"
	"strings"
)

// Field keys used in validation error maps.
const (
	FieldEmail           = "email"
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"

	// FieldNonField keys errors that do not belong to a single field, such
	// as the login endpoint's missing-credentials failure.
	FieldNonField = "non_field_errors"
)

// User-facing validation messages.
const (
	MsgFieldRequired      = "This field is required."
	MsgInvalidEmail       = "Enter a valid email address."
	MsgEmailExists        = "A user with this email already exists."
	MsgUsernameExists     = "A user with this username already exists."
	MsgPasswordTooShort   = "Password must be at least 8 characters long."
	MsgPasswordTooLong    = "Password must be at most 72 characters long."
	MsgPasswordMismatch   = "Password fields didn't match."
	MsgMissingCredentials = "Must include 'email' and 'password'."
)

// ValidationErrors accumulates field-keyed validation failures. Rules are
// evaluated independently, so a single request can report errors on several
// fields at once. It implements error so services can return it through
// ordinary error paths; callers unwrap it with errors.As.
type ValidationErrors map[string][]string

// Add appends a message under the given field key.
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Empty reports whether no errors have been recorded.
func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

// Has reports whether the given field has at least one error.
func (v ValidationErrors) Has(field string) bool {
	return len(v[field]) > 0
}

// Error implements the error interface with a stable, readable rendering.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(v[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
