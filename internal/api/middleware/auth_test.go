package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsvc/user-api/internal/service/auth"
)

func newJWTService(t *testing.T) auth.JWTService {
	t.Helper()

	svc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:               "test-jwt-secret-key-thats-long-enough",
		AccessTokenLifetime:  time.Hour,
		RefreshTokenLifetime: 24 * time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	jwtService := newJWTService(t)
	userID := uuid.New()

	pair, err := jwtService.IssueTokenPair(context.Background(), userID)
	require.NoError(t, err)

	var gotUserID uuid.UUID
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		gotUserID, _ = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	handler := NewAuthMiddleware(jwtService).Authenticate(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "valid bearer token",
			header:     "Bearer " + pair.Access,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic " + pair.Access,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "refresh token rejected on protected route",
			header:     "Bearer " + pair.Refresh,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reached = false
			gotUserID = uuid.Nil

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantNext, reached)
			if tc.wantNext {
				assert.Equal(t, userID, gotUserID)
			}
		})
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:               "test-jwt-secret-key-thats-long-enough",
		AccessTokenLifetime:  -time.Hour, // already expired when issued
		RefreshTokenLifetime: time.Hour,
	})
	require.NoError(t, err)

	pair, err := jwtService.IssueTokenPair(context.Background(), uuid.New())
	require.NoError(t, err)

	handler := NewAuthMiddleware(jwtService).Authenticate(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run for an expired token")
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}
