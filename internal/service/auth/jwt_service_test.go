package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/config"
	"github.com/phrazzld/fitload/internal/platform/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, secret string, now time.Time) JWTService {
	t.Helper()
	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: 60,
	}, clock.NewFixed(now))
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Parallel() // Enable parallel execution

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60}, nil)
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret}, nil)
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc := newTestService(t, testSecret, fixedTime)
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	_, err = svc.GenerateToken(context.Background(), uuid.Nil)
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	t.Parallel() // Enable parallel execution

	userID := uuid.New()
	issue := func(t *testing.T, secret string, now time.Time) string {
		token, err := newTestService(t, secret, now).GenerateToken(context.Background(), userID)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name      string
		token     func(t *testing.T) string
		validates time.Time
		wantErr   error
	}{
		{
			name:      "valid token",
			token:     func(t *testing.T) string { return issue(t, testSecret, fixedTime) },
			validates: fixedTime.Add(30 * time.Minute),
		},
		{
			name:      "within clock skew after expiry",
			token:     func(t *testing.T) string { return issue(t, testSecret, fixedTime) },
			validates: fixedTime.Add(time.Hour + time.Minute),
		},
		{
			name:      "expired token",
			token:     func(t *testing.T) string { return issue(t, testSecret, fixedTime) },
			validates: fixedTime.Add(2 * time.Hour),
			wantErr:   ErrExpiredToken,
		},
		{
			name:      "invalid signature",
			token:     func(t *testing.T) string { return issue(t, wrongSecret, fixedTime) },
			validates: fixedTime,
			wantErr:   ErrInvalidToken,
		},
		{
			name:      "malformed token",
			token:     func(*testing.T) string { return "this.is.not.a.valid.jwt.token" },
			validates: fixedTime,
			wantErr:   ErrInvalidToken,
		},
		{
			name:      "empty token",
			token:     func(*testing.T) string { return "" },
			validates: fixedTime,
			wantErr:   ErrMissingToken,
		},
		{
			name: "refresh token is refused",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					UserID:    userID,
					TokenType: "refresh",
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   userID.String(),
						IssuedAt:  jwt.NewNumericDate(fixedTime),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return token
			},
			validates: fixedTime,
			wantErr:   ErrWrongTokenType,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel() // Enable parallel execution

			svc := newTestService(t, testSecret, tt.validates)
			claims, err := svc.ValidateToken(context.Background(), tt.token(t))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}
