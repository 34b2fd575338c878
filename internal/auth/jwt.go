package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"task-tracker-api/internal/cache"
	"task-tracker-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// EmailClaim is the claim carrying the caller's verified email.
const EmailClaim = "email"

// claimsCacheCapacity bounds the number of distinct bearer tokens remembered.
const claimsCacheCapacity = 10_000

// ErrInvalidToken is returned for tokens that fail signature, issuer,
// audience or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// TokenService signs and verifies the HS256 tokens issued by the identity
// provider.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	cacheTTL time.Duration
	verified *cache.TTLCache[string, jwt.MapClaims]
	parser   *jwt.Parser
}

// NewTokenService builds a TokenService from the auth configuration.
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TokenTTL,
		cacheTTL: cfg.ClaimsCacheTTL,
		verified: cache.New[string, jwt.MapClaims](claimsCacheCapacity),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
		),
	}
}

// GenerateToken signs a token carrying email.
func (s *TokenService) GenerateToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		EmailClaim: email,
		"sub":      email,
		"iss":      s.issuer,
		"aud":      []string{s.audience},
		"iat":      jwt.NewNumericDate(now),
		"nbf":      jwt.NewNumericDate(now),
		"exp":      jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ValidateToken verifies tokenString and returns its claims. Verified claims
// are remembered until the token expires or the cache TTL elapses,
// whichever comes first.
func (s *TokenService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	if claims, ok := s.verified.Get(tokenString); ok {
		return claims, nil
	}

	claims := jwt.MapClaims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	ttl := s.cacheTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if left := time.Until(exp.Time); left < ttl {
			ttl = left
		}
	}
	s.verified.Put(tokenString, claims, ttl)
	return claims, nil
}

// PurgeExpiredClaims drops expired entries from the verified-claims cache
// every interval until ctx is done.
func (s *TokenService) PurgeExpiredClaims(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.verified.Purge()
		}
	}
}

// CallerEmail extracts the verified email from claims. It reports false when
// there are no claims, the claim is missing, or it is not a non-empty string.
func CallerEmail(claims jwt.MapClaims) (string, bool) {
	if claims == nil {
		return "", false
	}
	email, ok := claims[EmailClaim].(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
