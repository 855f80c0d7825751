// Package token issues and verifies the signed identity assertions that
// protected routes require.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL bounds a token's lifetime. Expiry is the only lifecycle
// control; there is no refresh and no revocation list.
const DefaultTTL = 100 * time.Hour

// ErrInvalidToken covers every verification failure: malformed input,
// bad signature, expiry.
var ErrInvalidToken = errors.New("token is not valid")

// UserClaim carries the asserted identity.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims is the signed payload, shaped as {user:{id}}.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a process-wide secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token asserting the given user id.
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the asserted user id.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid || claims.User.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.User.ID, nil
}
