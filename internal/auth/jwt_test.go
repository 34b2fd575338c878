package auth

import (
	"context"
	"testing"
	"time"

	"task-tracker-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:      "test-secret-that-is-long-enough-for-hs256",
		Issuer:         "task-management-api",
		Audience:       "task-management-clients",
		TokenTTL:       time.Hour,
		ClaimsCacheTTL: time.Minute,
	}
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewTokenService(testConfig())

	token, err := svc.GenerateToken("alice@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	email, ok := CallerEmail(claims)
	require.True(t, ok)
	require.Equal(t, "alice@x.com", email)

	// Second validation is served from the cache.
	require.Equal(t, 1, svc.verified.Len())
	again, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, claims, again)
}

func TestValidateToken_Invalid(t *testing.T) {
	svc := NewTokenService(testConfig())

	_, err := svc.ValidateToken("invalid.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := testConfig()
	other := cfg
	other.JWTSecret = "another-secret-that-is-long-enough-too"

	token, err := NewTokenService(other).GenerateToken("alice@x.com")
	require.NoError(t, err)

	_, err = NewTokenService(cfg).ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	cfg := testConfig()
	token := sign(t, cfg.JWTSecret, jwt.MapClaims{
		"email": "alice@x.com",
		"iss":   cfg.Issuer,
		"aud":   "someone-else",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := NewTokenService(cfg).ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testConfig()
	token := sign(t, cfg.JWTSecret, jwt.MapClaims{
		"email": "alice@x.com",
		"iss":   cfg.Issuer,
		"aud":   cfg.Audience,
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})

	svc := NewTokenService(cfg)
	_, err := svc.ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Zero(t, svc.verified.Len())
}

func TestCallerEmail(t *testing.T) {
	cases := []struct {
		name   string
		claims jwt.MapClaims
		want   string
		ok     bool
	}{
		{"nil claims", nil, "", false},
		{"missing claim", jwt.MapClaims{"sub": "x"}, "", false},
		{"wrong type", jwt.MapClaims{"email": 42}, "", false},
		{"empty string", jwt.MapClaims{"email": ""}, "", false},
		{"present", jwt.MapClaims{"email": "c@x.com"}, "c@x.com", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CallerEmail(tc.claims)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestValidateToken_WithoutEmailClaim(t *testing.T) {
	cfg := testConfig()
	token := sign(t, cfg.JWTSecret, jwt.MapClaims{
		"sub": "service-account",
		"iss": cfg.Issuer,
		"aud": cfg.Audience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := NewTokenService(cfg).ValidateToken(token)
	require.NoError(t, err)
	_, ok := CallerEmail(claims)
	require.False(t, ok)
}

func TestPurgeExpiredClaims(t *testing.T) {
	cfg := testConfig()
	cfg.ClaimsCacheTTL = 20 * time.Millisecond
	svc := NewTokenService(cfg)

	token, err := svc.GenerateToken("a@x.com")
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, 1, svc.verified.Len())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.PurgeExpiredClaims(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return svc.verified.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestPurgeExpiredClaims_DisabledInterval(t *testing.T) {
	// Returns immediately instead of panicking in time.NewTicker.
	NewTokenService(testConfig()).PurgeExpiredClaims(context.Background(), 0)
}
