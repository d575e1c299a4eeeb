package auth

import (
	"errors"
	"strings"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

// Policy violation errors. Each maps to a user-facing validation message.
var (
	// ErrPasswordTooWeak indicates the password's estimated entropy is below
	// the configured minimum (common words, short repeated patterns, etc.).
	ErrPasswordTooWeak = errors.New("this password is too common or too weak")

	// ErrPasswordEntirelyNumeric indicates the password consists only of digits.
	ErrPasswordEntirelyNumeric = errors.New("this password is entirely numeric")

	// ErrPasswordTooSimilar indicates the password closely matches one of the
	// user's own attributes (email, username, name).
	ErrPasswordTooSimilar = errors.New("the password is too similar to your other personal information")
)

// DefaultMinEntropyBits is the default strength threshold for the entropy
// policy. 50 bits rejects dictionary words and keyboard walks while staying
// reachable for ordinary passphrases.
const DefaultMinEntropyBits = 50

// PasswordPolicy is the pluggable strength policy applied to candidate
// passwords at registration. Implementations return nil for acceptable
// passwords and one of the policy errors otherwise. The userAttributes are
// the candidate's own identity fields (email, username, names), used for
// similarity rejection.
type PasswordPolicy interface {
	Validate(password string, userAttributes []string) error
}

// EntropyPolicy implements PasswordPolicy backed by an entropy estimator,
// plus explicit rejections for entirely-numeric passwords and passwords
// derived from the user's own attributes.
type EntropyPolicy struct {
	minEntropyBits float64
}

// NewEntropyPolicy creates an EntropyPolicy with the given entropy floor.
// A non-positive value selects DefaultMinEntropyBits.
func NewEntropyPolicy(minEntropyBits float64) *EntropyPolicy {
	if minEntropyBits <= 0 {
		minEntropyBits = DefaultMinEntropyBits
	}
	return &EntropyPolicy{minEntropyBits: minEntropyBits}
}

// Ensure EntropyPolicy implements PasswordPolicy
var _ PasswordPolicy = (*EntropyPolicy)(nil)

// Validate implements PasswordPolicy.
func (p *EntropyPolicy) Validate(password string, userAttributes []string) error {
	if isEntirelyNumeric(password) {
		return ErrPasswordEntirelyNumeric
	}

	if tooSimilar(password, userAttributes) {
		return ErrPasswordTooSimilar
	}

	if err := passwordvalidator.Validate(password, p.minEntropyBits); err != nil {
		return ErrPasswordTooWeak
	}

	return nil
}

func isEntirelyNumeric(password string) bool {
	if password == "" {
		return false
	}
	for _, r := range password {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// tooSimilar reports whether the password contains, or is contained in, one
// of the user's attribute values. Attribute emails also contribute their
// local part, so "alice@example.com" rejects passwords built on "alice".
func tooSimilar(password string, attributes []string) bool {
	lower := strings.ToLower(password)

	for _, attr := range attributes {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if len(attr) < 3 {
			continue
		}

		candidates := []string{attr}
		if at := strings.IndexByte(attr, '@'); at > 0 {
			candidates = append(candidates, attr[:at])
		}

		for _, candidate := range candidates {
			if len(candidate) < 3 {
				continue
			}
			if strings.Contains(lower, candidate) || strings.Contains(candidate, lower) {
				return true
			}
		}
	}

	return false
}
