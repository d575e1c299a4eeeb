package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", digest)

	assert.NoError(t, hasher.Compare(digest, "correct horse battery"))
	assert.Error(t, hasher.Compare(digest, "wrong password"))
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestEntropyPolicy(t *testing.T) {
	t.Parallel()

	policy := NewEntropyPolicy(0)

	tests := []struct {
		name       string
		password   string
		attributes []string
		wantErr    error
	}{
		{
			name:     "strong passphrase accepted",
			password: "correct-horse-battery-staple-42",
		},
		{
			name:     "entirely numeric rejected",
			password: "123456789012",
			wantErr:  ErrPasswordEntirelyNumeric,
		},
		{
			name:     "weak repeated pattern rejected",
			password: "aaaaaaaa",
			wantErr:  ErrPasswordTooWeak,
		},
		{
			name:       "password containing username rejected",
			password:   "alicejones2024!",
			attributes: []string{"alice@example.com", "alicejones"},
			wantErr:    ErrPasswordTooSimilar,
		},
		{
			name:       "password matching email local part rejected",
			password:   "xX-alice-Xx",
			attributes: []string{"alice@example.com"},
			wantErr:    ErrPasswordTooSimilar,
		},
		{
			name:       "short attributes ignored",
			password:   "unrelated-strong-passphrase-99",
			attributes: []string{"al", ""},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := policy.Validate(tc.password, tc.attributes)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
