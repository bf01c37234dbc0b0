package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/expense-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssue(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newHMACTokenService(testSecret, DefaultTokenLifetime, fixedClock(fixedTime))

	token, err := svc.Issue(context.Background(), "user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithTimeFunc(fixedClock(fixedTime)))
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestIssueRejectsEmptySubject(t *testing.T) {
	t.Parallel()

	svc := newHMACTokenService(testSecret, time.Hour, time.Now)
	_, err := svc.Issue(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuedTokensAreUnique(t *testing.T) {
	t.Parallel()

	svc := newHMACTokenService(testSecret, time.Hour, fixedClock(time.Now()))
	a, err := svc.Issue(context.Background(), "u")
	require.NoError(t, err)
	b, err := svc.Issue(context.Background(), "u")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	wrongSecret := "wrong-secret-that-is-long-enough-for-testing"

	tests := []struct {
		name      string
		setupFunc func() (TokenService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (TokenService, string) {
				svc := newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime))
				token, _ := svc.Issue(context.Background(), "user-1")
				return svc, token
			},
		},
		{
			name: "just before expiry",
			setupFunc: func() (TokenService, string) {
				gen := newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime))
				token, _ := gen.Issue(context.Background(), "user-1")
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime.Add(lifetime-time.Second))), token
			},
		},
		{
			name: "expired token",
			setupFunc: func() (TokenService, string) {
				gen := newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime))
				token, _ := gen.Issue(context.Background(), "user-1")
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime.Add(lifetime+time.Hour))), token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "invalid signature",
			setupFunc: func() (TokenService, string) {
				gen := newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime))
				token, _ := gen.Issue(context.Background(), "user-1")
				return newHMACTokenService(wrongSecret, lifetime, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (TokenService, string) {
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime)), "this.is.not.a.valid.jwt.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "empty token",
			setupFunc: func() (TokenService, string) {
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime)), ""
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "unsigned token",
			setupFunc: func() (TokenService, string) {
				claims := jwt.RegisteredClaims{
					Subject:   "user-1",
					ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
				}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
					SignedString(jwt.UnsafeAllowNoneSignatureType)
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing subject",
			setupFunc: func() (TokenService, string) {
				claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime))}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing expiry",
			setupFunc: func() (TokenService, string) {
				claims := jwt.RegisteredClaims{Subject: "user-1"}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setupFunc()
			subject, err := svc.Validate(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, subject)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-1", subject)
		})
	}
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	svc, err := NewTokenService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenLifetime, svc.(*hmacTokenService).tokenLifetime)
}
