// services/token_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// SessionClaims are the JWT claims embedded in every bearer token.
// The claim name `userId` matches what the browser client already sends.
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HS256 session tokens. There is
// no revocation list: a token stays valid until its embedded expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a fresh token for playerID with iat = now and exp = now + TTL.
func (s *TokenService) Issue(playerID string) (string, error) {
	now := s.now()
	claims := SessionClaims{
		UserID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded player ID.
func (s *TokenService) Verify(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrTokenMissing
	}

	var claims SessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if claims.UserID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}

// Refresh re-issues a token for the same player with a fresh expiry. The
// presented token must still verify: an already-expired token cannot be
// refreshed and the client has to log in again. That cutoff is probably a
// usability wart rather than a security requirement, but it is what the
// deployed clients expect, so it stays.
func (s *TokenService) Refresh(token string) (string, error) {
	playerID, err := s.Verify(token)
	if err != nil {
		return "", err
	}
	return s.Issue(playerID)
}
