package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key-thats-long-enough"

func newTestService(t *testing.T) JWTService {
	t.Helper()

	svc, err := NewJWTService(JWTConfig{
		Secret:               testSecret,
		AccessTokenLifetime:  time.Hour,
		RefreshTokenLifetime: 24 * time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(JWTConfig{
		Secret:               "too-short",
		AccessTokenLifetime:  time.Hour,
		RefreshTokenLifetime: time.Hour,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32")
}

func TestIssueTokenPairRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	userID := uuid.New()

	pair, err := svc.IssueTokenPair(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	accessClaims, err := svc.ValidateToken(context.Background(), pair.Access)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, "access", accessClaims.TokenType)
	assert.Equal(t, userID.String(), accessClaims.Subject)

	refreshClaims, err := svc.ValidateRefreshToken(context.Background(), pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
}

func TestValidateTokenRejectsWrongType(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	pair, err := svc.IssueTokenPair(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(context.Background(), pair.Access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestValidateTokenRejectsTamperedSignature(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	pair, err := svc.IssueTokenPair(context.Background(), uuid.New())
	require.NoError(t, err)

	other, err := NewJWTService(JWTConfig{
		Secret:               "another-jwt-secret-key-also-long-enough",
		AccessTokenLifetime:  time.Hour,
		RefreshTokenLifetime: time.Hour,
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(context.Background(), pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpiry(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(JWTConfig{
		Secret:               testSecret,
		AccessTokenLifetime:  time.Hour,
		RefreshTokenLifetime: 24 * time.Hour,
	})
	require.NoError(t, err)

	impl := svc.(*hmacJWTService)
	issueTime := time.Now()
	impl.timeFunc = func() time.Time { return issueTime }

	pair, err := svc.IssueTokenPair(context.Background(), uuid.New())
	require.NoError(t, err)

	// Advance past the access lifetime plus clock skew.
	impl.timeFunc = func() time.Time { return issueTime.Add(time.Hour + 3*time.Minute) }

	_, err = svc.ValidateToken(context.Background(), pair.Access)
	assert.ErrorIs(t, err, ErrExpiredToken)

	// The refresh token outlives the access token.
	_, err = svc.ValidateRefreshToken(context.Background(), pair.Refresh)
	assert.NoError(t, err)

	// And eventually expires too.
	impl.timeFunc = func() time.Time { return issueTime.Add(25 * time.Hour) }
	_, err = svc.ValidateRefreshToken(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}
